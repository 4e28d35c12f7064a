// Package falcon implements verification of Falcon-512 lattice signatures:
// arithmetic over Z_12289[x]/(x^512+1) with a number-theoretic transform,
// the bit-packed public-key and compressed-signature codecs, SHAKE256-based
// hash-to-point, and the fixed-point norm check. Signing and key generation
// are out of scope; the package only ever consumes key and signature blobs
// produced elsewhere.
package falcon
