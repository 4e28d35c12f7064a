// Package vault keeps Falcon-512-controlled balances in a bbolt database.
// A vault is addressed by the SHA-256 digest of its public key; moving funds
// out requires a signature by that key over a canonical authorization
// message. Credited funds land in a flat ledger keyed by 32-byte addresses.
package vault

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	bolt "go.etcd.io/bbolt"

	"falcon-vault/falcon"
)

var (
	// ErrVaultExists reports an open attempt for an already-known key.
	ErrVaultExists = errors.New("vault: vault already exists")
	// ErrVaultNotFound reports an operation on an unknown digest.
	ErrVaultNotFound = errors.New("vault: vault not found")
	// ErrInsufficientFunds reports a debit larger than the balance.
	ErrInsufficientFunds = errors.New("vault: insufficient funds")
	// ErrLedgerOverflow reports a credit that would wrap a ledger balance.
	ErrLedgerOverflow = errors.New("vault: ledger balance overflow")
)

var (
	bucketVaults = []byte("vaults")
	bucketLedger = []byte("ledger")
)

// AddressSize is the length of a ledger address.
const AddressSize = 32

// closePrefix is the domain separator of the close authorization message.
const closePrefix = "CLOSE_VAULT"

// record is the stored state of one vault.
type record struct {
	PublicKey []byte `json:"public_key"`
	Balance   uint64 `json:"balance"`
}

// Store is a handle on the vault database. It is safe for concurrent use;
// bbolt serializes writers.
type Store struct {
	db *bolt.DB
}

// NewStore opens (creating if needed) the database at path and ensures the
// buckets exist.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open vault database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketVaults, bucketLedger} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// OpenVault creates a vault for publicKey holding deposit and returns its
// digest. The key layout is validated up front so a vault can never hold a
// key that later fails to parse.
func (s *Store) OpenVault(publicKey []byte, deposit uint64) ([32]byte, error) {
	if _, err := falcon.ParsePublicKey(publicKey); err != nil {
		return [32]byte{}, err
	}
	digest := falcon.PublicKeyDigest(publicKey)
	err := s.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(bucketVaults)
		if vaults.Get(digest[:]) != nil {
			return ErrVaultExists
		}
		return putRecord(vaults, digest, record{
			PublicKey: append([]byte(nil), publicKey...),
			Balance:   deposit,
		})
	})
	if err != nil {
		return [32]byte{}, err
	}
	return digest, nil
}

// TransferFromVault debits amount from the vault behind digest and credits
// the recipient's ledger entry. The signature must cover the canonical
// transfer message for (amount, recipient) under the vault's stored key.
func (s *Store) TransferFromVault(digest [32]byte, signature []byte, amount uint64, recipient [AddressSize]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(bucketVaults)
		rec, err := getRecord(vaults, digest)
		if err != nil {
			return err
		}
		if err := falcon.Verify(rec.PublicKey, signature, transferMessage(amount, recipient)); err != nil {
			return err
		}
		if rec.Balance < amount {
			return fmt.Errorf("%w: balance %d, debit %d", ErrInsufficientFunds, rec.Balance, amount)
		}
		rec.Balance -= amount
		if err := putRecord(vaults, digest, rec); err != nil {
			return err
		}
		return credit(tx.Bucket(bucketLedger), recipient, amount)
	})
}

// CloseVault verifies a close authorization, moves the remaining balance to
// the refund address and deletes the vault.
func (s *Store) CloseVault(digest [32]byte, signature []byte, refund [AddressSize]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		vaults := tx.Bucket(bucketVaults)
		rec, err := getRecord(vaults, digest)
		if err != nil {
			return err
		}
		if err := falcon.Verify(rec.PublicKey, signature, closeMessage(refund)); err != nil {
			return err
		}
		if err := credit(tx.Bucket(bucketLedger), refund, rec.Balance); err != nil {
			return err
		}
		return vaults.Delete(digest[:])
	})
}

// Balance returns the current balance of the vault behind digest.
func (s *Store) Balance(digest [32]byte) (uint64, error) {
	var balance uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		rec, err := getRecord(tx.Bucket(bucketVaults), digest)
		if err != nil {
			return err
		}
		balance = rec.Balance
		return nil
	})
	return balance, err
}

// PublicKey returns the stored key of the vault behind digest.
func (s *Store) PublicKey(digest [32]byte) ([]byte, error) {
	var key []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		rec, err := getRecord(tx.Bucket(bucketVaults), digest)
		if err != nil {
			return err
		}
		key = rec.PublicKey
		return nil
	})
	return key, err
}

// LedgerBalance returns the credited total of a ledger address.
func (s *Store) LedgerBalance(addr [AddressSize]byte) (uint64, error) {
	var balance uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketLedger).Get(addr[:]); v != nil {
			balance = binary.BigEndian.Uint64(v)
		}
		return nil
	})
	return balance, err
}

// transferMessage is the canonical byte string a transfer signature covers:
// the amount in little-endian, the recipient address, and an 8-byte field
// reserved for replay protection, currently zero.
func transferMessage(amount uint64, recipient [AddressSize]byte) []byte {
	msg := make([]byte, 8+AddressSize+8)
	binary.LittleEndian.PutUint64(msg[:8], amount)
	copy(msg[8:], recipient[:])
	return msg
}

// closeMessage is the canonical byte string a close signature covers.
func closeMessage(refund [AddressSize]byte) []byte {
	return append([]byte(closePrefix), refund[:]...)
}

func getRecord(b *bolt.Bucket, digest [32]byte) (record, error) {
	raw := b.Get(digest[:])
	if raw == nil {
		return record{}, fmt.Errorf("%w: digest %x", ErrVaultNotFound, digest[:8])
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, fmt.Errorf("decode vault record: %w", err)
	}
	return rec, nil
}

func putRecord(b *bolt.Bucket, digest [32]byte, rec record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return b.Put(digest[:], raw)
}

func credit(b *bolt.Bucket, addr [AddressSize]byte, amount uint64) error {
	var balance uint64
	if v := b.Get(addr[:]); v != nil {
		balance = binary.BigEndian.Uint64(v)
	}
	if amount > math.MaxUint64-balance {
		return fmt.Errorf("%w: address %x", ErrLedgerOverflow, addr[:8])
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], balance+amount)
	return b.Put(addr[:], buf[:])
}
