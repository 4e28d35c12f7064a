package keccak

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	"golang.org/x/crypto/sha3"
)

// FIPS 202 known-answer prefixes.
func TestShake256KAT(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", "46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f"},
		{"abc", "483366601360a8771c6863080cc4114d8db44530f8f1e1ee4f94ea37e78b5739"},
	}
	for _, c := range cases {
		got := Sum256([]byte(c.in))
		if hex.EncodeToString(got[:]) != c.out {
			t.Fatalf("SHAKE256(%q) = %x, want %s", c.in, got, c.out)
		}
	}
}

// The squeeze stream must agree with x/crypto's sha3 for arbitrary inputs,
// arbitrary absorb chunking, and arbitrary read sizes.
func TestShake256CrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lengths := []int{0, 1, 3, 17, 135, 136, 137, 271, 272, 273, 300, 1000, 5000}
	for _, n := range lengths {
		data := make([]byte, n)
		rng.Read(data)

		s := New()
		for i := 0; i < n; {
			c := 1 + rng.Intn(200)
			if i+c > n {
				c = n - i
			}
			s.Write(data[i : i+c])
			i += c
		}
		r := s.XOF()
		got := make([]byte, 438)
		r.Read(got[:137])
		r.Read(got[137:138])
		r.Read(got[138:])

		ref := sha3.NewShake256()
		ref.Write(data)
		want := make([]byte, 438)
		ref.Read(want)

		if !bytes.Equal(got, want) {
			t.Fatalf("len %d: stream disagrees with x/crypto sha3", n)
		}
	}
}

func TestReaderSuccessiveReadsDiffer(t *testing.T) {
	s := New()
	s.Write([]byte("stream"))
	r := s.XOF()
	a := make([]byte, 32)
	b := make([]byte, 32)
	r.Read(a)
	r.Read(b)
	if bytes.Equal(a, b) {
		t.Fatal("successive squeeze reads returned identical bytes")
	}
}

func TestWriteAfterXOFPanics(t *testing.T) {
	s := New()
	s.Write([]byte("x"))
	s.XOF()
	defer func() {
		if recover() == nil {
			t.Fatal("Write after XOF did not panic")
		}
	}()
	s.Write([]byte("y"))
}
