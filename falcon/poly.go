package falcon

// Polynomial is an element of Z_Q[x]/(x^N+1) in coefficient order.
type Polynomial [N]FieldElement

// NTT returns the transform of p. The receiver is not modified.
func (p Polynomial) NTT() Polynomial {
	nttForward(&p)
	return p
}

// InvNTT returns the inverse transform of p. The receiver is not modified.
func (p Polynomial) InvNTT() Polynomial {
	nttInverse(&p)
	return p
}

// Add returns p+q coefficient-wise.
func (p Polynomial) Add(q Polynomial) Polynomial {
	var out Polynomial
	for i := range p {
		out[i] = p[i].Add(q[i])
	}
	return out
}

// Sub returns p-q coefficient-wise.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	var out Polynomial
	for i := range p {
		out[i] = p[i].Sub(q[i])
	}
	return out
}

// PointwiseMul returns the coefficient-wise product; meaningful on
// NTT-domain operands, where it realizes the ring product.
func (p Polynomial) PointwiseMul(q Polynomial) Polynomial {
	var out Polynomial
	for i := range p {
		out[i] = p[i].Mul(q[i])
	}
	return out
}

// Balanced returns the signed representatives of the coefficients,
// each in [-(Q-1)/2, (Q-1)/2].
func (p Polynomial) Balanced() [N]int32 {
	var out [N]int32
	for i := range p {
		out[i] = p[i].Balanced()
	}
	return out
}

// polynomialFromSigned lifts signed coefficients into the field.
func polynomialFromSigned(s *[N]int16) Polynomial {
	var out Polynomial
	for i, v := range s {
		if v < 0 {
			out[i] = FieldElement(int32(v) + Q)
		} else {
			out[i] = FieldElement(v)
		}
	}
	return out
}
