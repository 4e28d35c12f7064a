package falcon

// Twiddle tables for the number-theoretic transform over Z_Q. The inverse
// table mirrors the forward one index by index (invTwiddles[i] = root^(2N-i)),
// which keeps inverse(forward(x)) == x exactly for every input.
var (
	twiddles    [N]FieldElement
	invTwiddles [N]FieldElement
)

func init() {
	twiddles[0] = 1
	invTwiddles[0] = 1
	for i := 1; i < N; i++ {
		twiddles[i] = pow(root, uint32(i))
		invTwiddles[i] = pow(root, uint32(2*N-i))
	}
}

// nttForward transforms p in place: bit-reversal permutation followed by
// LogN doubling butterfly stages.
func nttForward(p *Polynomial) {
	bitReverse(p)
	for length := 2; length <= N; length <<= 1 {
		step := N / length
		half := length / 2
		for start := 0; start < N; start += length {
			for j := 0; j < half; j++ {
				w := twiddles[step*j]
				u := p[start+j]
				v := p[start+j+half].Mul(w)
				p[start+j] = u.Add(v)
				p[start+j+half] = u.Sub(v)
			}
		}
	}
}

// nttInverse undoes nttForward in place: mirrored butterfly stages with the
// inverse twiddles, scaling by N^-1, then the bit-reversal permutation.
func nttInverse(p *Polynomial) {
	for length := N; length >= 2; length >>= 1 {
		step := N / length
		half := length / 2
		for start := 0; start < N; start += length {
			for j := 0; j < half; j++ {
				w := invTwiddles[step*j]
				u := p[start+j]
				v := p[start+j+half]
				p[start+j] = u.Add(v)
				p[start+j+half] = u.Sub(v).Mul(w)
			}
		}
	}
	for i := range p {
		p[i] = p[i].Mul(invN)
	}
	bitReverse(p)
}

func bitReverse(p *Polynomial) {
	j := 0
	for i := 1; i < N; i++ {
		bit := N >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j |= bit
		if i < j {
			p[i], p[j] = p[j], p[i]
		}
	}
}
