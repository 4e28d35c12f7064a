package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"falcon-vault/falcon"
	"falcon-vault/vault"
)

func usage() {
	fmt.Println(`usage: falconcli <verify|digest|vault> [options]

Subcommands:
  verify   Verify a Falcon-512 signature
           Flags:
             -pk   <file>   public key, hex (897 bytes decoded)
             -sig  <file>   signature, hex (666 bytes decoded)
             -msg  <file>   message, raw bytes

  digest   Print the SHA-256 digest of a public key
           Flags:
             -pk   <file>   public key, hex

  vault    Operate on a vault database
           Usage: falconcli vault <open|transfer|close|show> [options]
           Common flags:
             -db <file>     bbolt database path (default: vault.db)
           open:     -pk <file> -deposit <n>
           transfer: -digest <hex32> -sig <file> -amount <n> -recipient <hex32>
           close:    -digest <hex32> -sig <file> -refund <hex32>
           show:     -digest <hex32>`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "verify":
		runVerify(os.Args[2:])
	case "digest":
		runDigest(os.Args[2:])
	case "vault":
		runVault(os.Args[2:])
	default:
		usage()
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	pkPath := fs.String("pk", "", "public key file (hex)")
	sigPath := fs.String("sig", "", "signature file (hex)")
	msgPath := fs.String("msg", "", "message file (raw)")
	fs.Parse(args)
	if *pkPath == "" || *sigPath == "" || *msgPath == "" {
		log.Fatal("verify: -pk, -sig and -msg are required")
	}
	pk := readHexFile(*pkPath)
	sig := readHexFile(*sigPath)
	msg, err := os.ReadFile(*msgPath)
	if err != nil {
		log.Fatalf("read message: %v", err)
	}
	if err := falcon.Verify(pk, sig, msg); err != nil {
		log.Fatalf("verification failed: %v", err)
	}
	fmt.Println("signature valid")
}

func runDigest(args []string) {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	pkPath := fs.String("pk", "", "public key file (hex)")
	fs.Parse(args)
	if *pkPath == "" {
		log.Fatal("digest: -pk is required")
	}
	d := falcon.PublicKeyDigest(readHexFile(*pkPath))
	fmt.Println(hex.EncodeToString(d[:]))
}

func runVault(args []string) {
	if len(args) < 1 {
		usage()
	}
	op := args[0]
	fs := flag.NewFlagSet("vault "+op, flag.ExitOnError)
	dbPath := fs.String("db", "vault.db", "bbolt database path")
	pkPath := fs.String("pk", "", "public key file (hex)")
	sigPath := fs.String("sig", "", "signature file (hex)")
	digestHex := fs.String("digest", "", "vault digest (hex, 32 bytes)")
	recipientHex := fs.String("recipient", "", "recipient address (hex, 32 bytes)")
	refundHex := fs.String("refund", "", "refund address (hex, 32 bytes)")
	deposit := fs.Uint64("deposit", 0, "initial deposit")
	amount := fs.Uint64("amount", 0, "transfer amount")
	fs.Parse(args[1:])

	store, err := vault.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	switch op {
	case "open":
		if *pkPath == "" {
			log.Fatal("vault open: -pk is required")
		}
		digest, err := store.OpenVault(readHexFile(*pkPath), *deposit)
		if err != nil {
			log.Fatalf("open vault: %v", err)
		}
		fmt.Printf("vault %s opened with balance %d\n", hex.EncodeToString(digest[:]), *deposit)
	case "transfer":
		digest := parseDigest(*digestHex)
		if err := store.TransferFromVault(digest, readHexFile(*sigPath), *amount, parseAddress(*recipientHex)); err != nil {
			log.Fatalf("transfer: %v", err)
		}
		fmt.Printf("transferred %d\n", *amount)
	case "close":
		digest := parseDigest(*digestHex)
		if err := store.CloseVault(digest, readHexFile(*sigPath), parseAddress(*refundHex)); err != nil {
			log.Fatalf("close vault: %v", err)
		}
		fmt.Println("vault closed")
	case "show":
		digest := parseDigest(*digestHex)
		balance, err := store.Balance(digest)
		if err != nil {
			log.Fatalf("show: %v", err)
		}
		fmt.Printf("balance: %d\n", balance)
	default:
		usage()
	}
}

func readHexFile(path string) []byte {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	return b
}

func parseDigest(s string) [32]byte {
	if s == "" {
		log.Fatal("-digest is required")
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		log.Fatalf("digest must be 32 hex-encoded bytes")
	}
	var d [32]byte
	copy(d[:], b)
	return d
}

func parseAddress(s string) [vault.AddressSize]byte {
	if s == "" {
		log.Fatal("address flag is required")
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != vault.AddressSize {
		log.Fatalf("address must be %d hex-encoded bytes", vault.AddressSize)
	}
	var a [vault.AddressSize]byte
	copy(a[:], b)
	return a
}
