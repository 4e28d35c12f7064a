// Package keccak implements the SHAKE256 extendable-output function over the
// Keccak-f[1600] permutation (FIPS 202). The sponge absorbs at a 136-byte
// rate and, once finalized, squeezes an unbounded output stream.
package keccak

const (
	// Rate is the sponge rate of SHAKE256 in bytes (1088 bits).
	Rate = 136

	domainSeparator = 0x1f
)

// Shake256 is an absorbing SHAKE256 sponge. The zero value is ready to use.
// Finalization via XOF is one-way: writing after it panics.
type Shake256 struct {
	state     [25]uint64
	buf       [Rate]byte
	fill      int
	finalized bool
}

// New returns a fresh SHAKE256 sponge.
func New() *Shake256 {
	return &Shake256{}
}

// Write absorbs p into the sponge. It never fails; the error is always nil.
// Write panics if the sponge has been finalized with XOF.
func (s *Shake256) Write(p []byte) (int, error) {
	if s.finalized {
		panic("keccak: Write after XOF")
	}
	n := len(p)
	for len(p) > 0 {
		c := copy(s.buf[s.fill:], p)
		s.fill += c
		p = p[c:]
		if s.fill == Rate {
			s.absorbBlock()
		}
	}
	return n, nil
}

// XOF finalizes the sponge (multi-rate padding 0x1F ... 0x80) and returns a
// reader over the squeeze stream. The sponge cannot absorb afterwards.
func (s *Shake256) XOF() *Reader {
	if s.finalized {
		panic("keccak: XOF called twice")
	}
	s.finalized = true
	for i := s.fill; i < Rate; i++ {
		s.buf[i] = 0
	}
	s.buf[s.fill] ^= domainSeparator
	s.buf[Rate-1] ^= 0x80
	s.fill = Rate
	s.absorbBlock()
	r := &Reader{state: s.state}
	r.squeezeBlock()
	return r
}

// Sum256 is a convenience one-shot returning the first 32 bytes of
// SHAKE256(data).
func Sum256(data []byte) [32]byte {
	s := New()
	s.Write(data)
	var out [32]byte
	s.XOF().Read(out[:])
	return out
}

func (s *Shake256) absorbBlock() {
	for i := 0; i < Rate/8; i++ {
		s.state[i] ^= leUint64(s.buf[8*i:])
	}
	keccakF1600(&s.state)
	s.fill = 0
}

// Reader produces the SHAKE256 squeeze stream. It is an io.Reader whose Read
// never returns an error and always fills the whole slice.
type Reader struct {
	state [25]uint64
	out   [Rate]byte
	avail int
}

// Read fills p with the next len(p) bytes of the output stream.
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		if r.avail == 0 {
			keccakF1600(&r.state)
			r.squeezeBlock()
		}
		c := copy(p, r.out[Rate-r.avail:])
		r.avail -= c
		p = p[c:]
	}
	return n, nil
}

func (r *Reader) squeezeBlock() {
	for i := 0; i < Rate/8; i++ {
		putLeUint64(r.out[8*i:], r.state[i])
	}
	r.avail = Rate
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLeUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
