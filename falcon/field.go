package falcon

// FieldElement is a residue modulo Q, always held in [0, Q).
type FieldElement uint16

// Add returns a+b mod Q.
func (a FieldElement) Add(b FieldElement) FieldElement {
	v := uint32(a) + uint32(b)
	if v >= Q {
		v -= Q
	}
	return FieldElement(v)
}

// Sub returns a-b mod Q.
func (a FieldElement) Sub(b FieldElement) FieldElement {
	v := uint32(a) + Q - uint32(b)
	if v >= Q {
		v -= Q
	}
	return FieldElement(v)
}

// Mul returns a*b mod Q via a 32-bit wide product.
func (a FieldElement) Mul(b FieldElement) FieldElement {
	return FieldElement(reduce(uint32(a) * uint32(b)))
}

// Neg returns -a mod Q.
func (a FieldElement) Neg() FieldElement {
	if a == 0 {
		return 0
	}
	return Q - a
}

// Balanced maps a to its signed representative in [-(Q-1)/2, (Q-1)/2].
func (a FieldElement) Balanced() int32 {
	if a > Q/2 {
		return int32(a) - Q
	}
	return int32(a)
}

// reduce maps any uint32 to its residue modulo Q. It folds the value at the
// 14-bit boundary using 2^14 = 4095 (mod Q) until it fits, then applies one
// conditional subtraction. Exact for the full uint32 range.
func reduce(x uint32) uint32 {
	for x >= 1<<14 {
		x = (x & 0x3fff) + 4095*(x>>14)
	}
	if x >= Q {
		x -= Q
	}
	return x
}

// pow raises base to exp modulo Q by binary exponentiation.
func pow(base FieldElement, exp uint32) FieldElement {
	var res FieldElement = 1
	for exp > 0 {
		if exp&1 == 1 {
			res = res.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return res
}
