package falcon

import (
	"crypto/sha256"
	"fmt"
)

// Verify checks a Falcon-512 signature over message. It returns nil iff the
// signature is valid; any failure is reported through the package's error
// taxonomy, and the first failing stage wins.
//
// Pipeline: parse the public key h, parse the signature envelope, decompress
// s2, hash (nonce, message) to the point c, recover s1 = c - s2*h in the
// ring, and accept iff ||s1||^2 + ||s2||^2 stays strictly below the norm
// bound.
func Verify(publicKey, signature, message []byte) error {
	h, err := ParsePublicKey(publicKey)
	if err != nil {
		return err
	}
	parts, err := parseSignature(signature)
	if err != nil {
		return err
	}
	s2, err := DecompressSignature(parts.payload)
	if err != nil {
		return err
	}
	c, err := HashToPoint(message, parts.nonce)
	if err != nil {
		return err
	}

	s2Poly := polynomialFromSigned(s2)
	product := s2Poly.NTT().PointwiseMul(h.NTT()).InvNTT()
	s1 := c.Sub(product).Balanced()

	// Squared norm in 32.32 fixed point with early exit. Coefficients are
	// at most Q/2 and 2048 in magnitude, so each term fits comfortably and
	// the running sum cannot overflow before the exit triggers.
	var norm int64
	for i := 0; i < N; i++ {
		t1 := int64(s1[i]) * int64(s1[i])
		t2 := int64(s2[i]) * int64(s2[i])
		norm += (t1 + t2) << 32
		if norm >= signatureNormBound {
			return fmt.Errorf("%w: signature norm at coefficient %d", ErrBounds, i)
		}
	}
	return nil
}

// PublicKeyDigest returns the SHA-256 digest of the full public-key
// encoding. The digest is the key's identity for storage layers; the core
// never interprets it.
func PublicKeyDigest(publicKey []byte) [32]byte {
	return sha256.Sum256(publicKey)
}
