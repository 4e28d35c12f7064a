package falcon

import (
	"fmt"

	"falcon-vault/keccak"
)

// HashToPoint maps (nonce, message) to a ring element via rejection sampling
// on the SHAKE256 stream of nonce||message. Draws are 16-bit big-endian; a
// draw t is accepted iff t < hashAcceptBound and contributes t mod Q, which
// keeps the output uniform over [0, Q). Sampling is capped at maxHashDraws,
// after which the function fails deterministically.
func HashToPoint(message, nonce []byte) (Polynomial, error) {
	var c Polynomial
	if len(nonce) != NonceSize {
		return c, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrFormat, len(nonce), NonceSize)
	}
	sponge := keccak.New()
	sponge.Write(nonce)
	sponge.Write(message)
	stream := sponge.XOF()

	var draw [2]byte
	filled := 0
	for draws := 0; filled < N; draws++ {
		if draws == maxHashDraws {
			return c, fmt.Errorf("%w: hash-to-point draw budget (%d) exhausted", ErrBounds, maxHashDraws)
		}
		stream.Read(draw[:])
		t := uint32(draw[0])<<8 | uint32(draw[1])
		if t < hashAcceptBound {
			c[filled] = FieldElement(t % Q)
			filled++
		}
	}
	return c, nil
}
