package falcon

import "fmt"

// Wire formats, all little-endian at the bit level: bit i of a stream lives
// in bit (i mod 8) of byte (i div 8).
//
// Public key: one header byte equal to LogN, then 512 coefficients of 14
// bits each, bit-packed.
//
// Signature: one header byte 0x59 (compressed tag 2, fixed-size flag, LogN),
// a 40-byte nonce, then the 625-byte compressed payload. Each coefficient is
// a sign bit followed by 7-bit groups of the magnitude, low group first, each
// group followed by a continuation bit. At most three groups (shifts 0, 7,
// 14). Unused payload bits after the last coefficient must be zero.

// ParsePublicKey unpacks the 897-byte encoding into the key polynomial h.
// Coefficients are reduced into [0, Q) on read.
func ParsePublicKey(pk []byte) (Polynomial, error) {
	var h Polynomial
	if len(pk) != PublicKeySize {
		return h, fmt.Errorf("%w: public key is %d bytes, want %d", ErrFormat, len(pk), PublicKeySize)
	}
	if pk[0] != LogN {
		return h, fmt.Errorf("%w: public key header 0x%02x, want 0x%02x", ErrFormat, pk[0], LogN)
	}
	body := pk[1:]
	for i := 0; i < N; i++ {
		off := i * 14
		var c uint32
		for k := 0; k < 14; k++ {
			pos := off + k
			bit := uint32(body[pos>>3]>>(pos&7)) & 1
			c |= bit << k
		}
		h[i] = FieldElement(reduce(c))
	}
	return h, nil
}

// signatureParts is the decoded fixed layout of a signature blob.
type signatureParts struct {
	nonce   []byte
	payload []byte
}

func parseSignature(sig []byte) (signatureParts, error) {
	if len(sig) != SignatureSize {
		return signatureParts{}, fmt.Errorf("%w: signature is %d bytes, want %d", ErrFormat, len(sig), SignatureSize)
	}
	if sig[0] != signatureHeader {
		return signatureParts{}, fmt.Errorf("%w: signature header 0x%02x, want 0x%02x", ErrFormat, sig[0], signatureHeader)
	}
	return signatureParts{
		nonce:   sig[1 : 1+NonceSize],
		payload: sig[1+NonceSize:],
	}, nil
}

// DecompressSignature decodes the compressed payload into the 512 signed
// coefficients of s2. Rejected encodings: a truncated stream, a code longer
// than three groups, a magnitude above the coefficient bound, a sign bit on
// a zero magnitude, a multi-group code whose top group is zero, and nonzero
// padding after the last coefficient. Each rejection keeps the signature
// non-malleable: every payload that decodes does so from exactly one byte
// string.
func DecompressSignature(payload []byte) (*[N]int16, error) {
	br := bitReader{data: payload}
	var out [N]int16
	for i := 0; i < N; i++ {
		sign, err := br.bit()
		if err != nil {
			return nil, err
		}
		var value int32
		shift := uint(0)
		for {
			group, err := br.group()
			if err != nil {
				return nil, err
			}
			value |= int32(group) << shift
			cont, err := br.bit()
			if err != nil {
				return nil, err
			}
			if cont == 0 {
				if shift > 0 && group == 0 {
					return nil, fmt.Errorf("%w: non-canonical code at coefficient %d", ErrDecode, i)
				}
				break
			}
			shift += 7
			if shift > 14 {
				return nil, fmt.Errorf("%w: code overflow at coefficient %d", ErrDecode, i)
			}
		}
		if value > coefficientBound {
			return nil, fmt.Errorf("%w: coefficient %d magnitude %d", ErrBounds, i, value)
		}
		if sign == 1 {
			if value == 0 {
				return nil, fmt.Errorf("%w: negative zero at coefficient %d", ErrDecode, i)
			}
			value = -value
		}
		out[i] = int16(value)
	}
	if err := br.remainderZero(); err != nil {
		return nil, err
	}
	return &out, nil
}

// bitReader walks a byte slice bit by bit, low bit of each byte first.
type bitReader struct {
	data []byte
	pos  int
}

func (br *bitReader) bit() (uint32, error) {
	if br.pos>>3 >= len(br.data) {
		return 0, fmt.Errorf("%w: payload exhausted at bit %d", ErrDecode, br.pos)
	}
	b := uint32(br.data[br.pos>>3]>>(br.pos&7)) & 1
	br.pos++
	return b, nil
}

// group reads the next 7 magnitude bits, low bit first.
func (br *bitReader) group() (uint32, error) {
	var g uint32
	for k := 0; k < 7; k++ {
		b, err := br.bit()
		if err != nil {
			return 0, err
		}
		g |= b << k
	}
	return g, nil
}

// remainderZero checks that every bit left in the stream is zero.
func (br *bitReader) remainderZero() error {
	for br.pos < 8*len(br.data) {
		b, _ := br.bit()
		if b != 0 {
			return fmt.Errorf("%w: nonzero padding at bit %d", ErrDecode, br.pos-1)
		}
	}
	return nil
}
