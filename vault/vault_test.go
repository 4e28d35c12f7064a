package vault

import (
	"encoding/hex"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	bolt "go.etcd.io/bbolt"

	"falcon-vault/falcon"
)

var (
	recipientAddr = addr(0x11)
	refundAddr    = addr(0x22)
)

func addr(b byte) (a [AddressSize]byte) {
	for i := range a {
		a[i] = b
	}
	return a
}

func loadHex(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return b
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenVault(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "transfer_pk.hex")

	digest, err := s.OpenVault(pk, 500)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if want := falcon.PublicKeyDigest(pk); digest != want {
		t.Fatalf("digest %x, want %x", digest, want)
	}
	if balance, err := s.Balance(digest); err != nil || balance != 500 {
		t.Fatalf("balance = %d, %v; want 500, nil", balance, err)
	}
	stored, err := s.PublicKey(digest)
	if err != nil || len(stored) != falcon.PublicKeySize {
		t.Fatalf("stored key %d bytes, %v", len(stored), err)
	}

	if _, err := s.OpenVault(pk, 1); !errors.Is(err, ErrVaultExists) {
		t.Fatalf("duplicate open: got %v, want ErrVaultExists", err)
	}
}

func TestOpenVaultRejectsMalformedKey(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "transfer_pk.hex")

	bad := append([]byte(nil), pk...)
	bad[0] = falcon.LogN + 1
	if _, err := s.OpenVault(bad, 10); !errors.Is(err, falcon.ErrFormat) {
		t.Fatalf("bad header: got %v, want falcon.ErrFormat", err)
	}
	if _, err := s.OpenVault(pk[:100], 10); !errors.Is(err, falcon.ErrFormat) {
		t.Fatalf("short key: got %v, want falcon.ErrFormat", err)
	}
}

func TestTransferFromVault(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "transfer_pk.hex")
	sig := loadHex(t, "transfer_sig.hex")

	digest, err := s.OpenVault(pk, 500)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.TransferFromVault(digest, sig, 100, recipientAddr); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if balance, _ := s.Balance(digest); balance != 400 {
		t.Fatalf("vault balance = %d, want 400", balance)
	}
	if credited, _ := s.LedgerBalance(recipientAddr); credited != 100 {
		t.Fatalf("recipient balance = %d, want 100", credited)
	}
}

func TestTransferRejectsMismatchedAuthorization(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "transfer_pk.hex")
	sig := loadHex(t, "transfer_sig.hex")

	digest, err := s.OpenVault(pk, 500)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// the signature covers amount 100 to recipientAddr; anything else must fail
	if err := s.TransferFromVault(digest, sig, 101, recipientAddr); err == nil {
		t.Fatal("transfer with wrong amount verified")
	}
	if err := s.TransferFromVault(digest, sig, 100, refundAddr); err == nil {
		t.Fatal("transfer with wrong recipient verified")
	}
	if balance, _ := s.Balance(digest); balance != 500 {
		t.Fatalf("balance changed to %d after rejected transfers", balance)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "transfer_pk.hex")
	sig := loadHex(t, "transfer_sig.hex")

	digest, err := s.OpenVault(pk, 50)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.TransferFromVault(digest, sig, 100, recipientAddr); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraft: got %v, want ErrInsufficientFunds", err)
	}
	if credited, _ := s.LedgerBalance(recipientAddr); credited != 0 {
		t.Fatalf("recipient credited %d by a rejected transfer", credited)
	}
}

func TestTransferUnknownVault(t *testing.T) {
	s := newTestStore(t)
	sig := loadHex(t, "transfer_sig.hex")
	var digest [32]byte
	if err := s.TransferFromVault(digest, sig, 100, recipientAddr); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("unknown digest: got %v, want ErrVaultNotFound", err)
	}
}

func TestCloseVault(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "close_pk.hex")
	sig := loadHex(t, "close_sig.hex")

	digest, err := s.OpenVault(pk, 321)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.CloseVault(digest, sig, refundAddr); err != nil {
		t.Fatalf("close: %v", err)
	}
	if refunded, _ := s.LedgerBalance(refundAddr); refunded != 321 {
		t.Fatalf("refund balance = %d, want 321", refunded)
	}
	if _, err := s.Balance(digest); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("closed vault still readable: %v", err)
	}
	if err := s.CloseVault(digest, sig, refundAddr); !errors.Is(err, ErrVaultNotFound) {
		t.Fatalf("double close: got %v, want ErrVaultNotFound", err)
	}
}

func TestCloseVaultRejectsWrongRefund(t *testing.T) {
	s := newTestStore(t)
	pk := loadHex(t, "close_pk.hex")
	sig := loadHex(t, "close_sig.hex")

	digest, err := s.OpenVault(pk, 321)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// the signature authorizes refundAddr only
	if err := s.CloseVault(digest, sig, recipientAddr); err == nil {
		t.Fatal("close with unauthorized refund address verified")
	}
	if balance, _ := s.Balance(digest); balance != 321 {
		t.Fatalf("balance changed to %d after rejected close", balance)
	}
}

func TestCreditOverflowGuard(t *testing.T) {
	s := newTestStore(t)
	err := s.db.Update(func(tx *bolt.Tx) error {
		ledger := tx.Bucket(bucketLedger)
		if err := credit(ledger, recipientAddr, math.MaxUint64); err != nil {
			return err
		}
		return credit(ledger, recipientAddr, 1)
	})
	if !errors.Is(err, ErrLedgerOverflow) {
		t.Fatalf("wrapping credit: got %v, want ErrLedgerOverflow", err)
	}
	// the failed transaction must roll back the first credit too
	if balance, err := s.LedgerBalance(recipientAddr); err != nil || balance != 0 {
		t.Fatalf("ledger balance = %d, %v after rolled-back update; want 0, nil", balance, err)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.db")
	pk := loadHex(t, "transfer_pk.hex")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	digest, err := s.OpenVault(pk, 77)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()
	if balance, err := s2.Balance(digest); err != nil || balance != 77 {
		t.Fatalf("after reopen: balance = %d, %v; want 77, nil", balance, err)
	}
}
