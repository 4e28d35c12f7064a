package falcon

// Falcon-512 parameter set. The scheme is fixed-parameter: every size below
// is a compile-time constant and the wire formats depend on all of them.
const (
	// Q is the field modulus.
	Q = 12289
	// N is the ring dimension.
	N = 512
	// LogN is log2(N); it doubles as the public-key header byte.
	LogN = 9

	// PublicKeySize is 1 header byte plus 512 coefficients of 14 bits.
	PublicKeySize = 1 + (N*14+7)/8 // 897
	// SignatureSize is 1 header byte, a 40-byte nonce and the fixed-size
	// compressed payload.
	SignatureSize = 1 + NonceSize + PayloadSize // 666
	// NonceSize is the salt length hashed together with the message.
	NonceSize = 40
	// PayloadSize is the compressed-signature payload length.
	PayloadSize = 625

	// signatureHeader encodes (compressed tag, fixed-size flag, LogN).
	signatureHeader = 2<<5 | 1<<4 | LogN // 0x59

	// coefficientBound caps the magnitude of a decompressed coefficient.
	coefficientBound = 2048

	// invN is the inverse of N modulo Q, used by the inverse transform.
	invN = 12265

	// root generates the twiddle tables of the number-theoretic transform.
	root = 1479

	// hashAcceptBound is floor(2^16/Q)*Q; 16-bit draws below it map to the
	// field without bias.
	hashAcceptBound = (1 << 16) / Q * Q // 61445

	// maxHashDraws caps rejection sampling in hash-to-point. The expected
	// draw count is about 546; hitting the cap is a deterministic failure
	// instead of an unbounded loop on a pathological stream.
	maxHashDraws = 4 * N
)

// signatureNormBound is the squared-norm acceptance bound in 32.32 fixed
// point: ||s1||^2 + ||s2||^2 must stay strictly below it.
const signatureNormBound = int64(34034726) << 32
