package falcon

import "errors"

// Verification failures fall into three terminal classes. Callers match them
// with errors.Is; every error returned by this package wraps exactly one.
var (
	// ErrFormat reports a malformed fixed layout: wrong buffer size or a
	// header byte that does not describe Falcon-512.
	ErrFormat = errors.New("falcon: malformed encoding")

	// ErrDecode reports an invalid variable-length signature payload.
	ErrDecode = errors.New("falcon: invalid compressed payload")

	// ErrBounds reports a quantity outside its allowed range: an oversized
	// coefficient, a squared norm at or above the acceptance bound, or an
	// exhausted hash-to-point draw budget.
	ErrBounds = errors.New("falcon: bound exceeded")
)
