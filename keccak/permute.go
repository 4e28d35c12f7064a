package keccak

import "math/bits"

// The 1600-bit state is 25 little-endian 64-bit lanes, indexed a[5*y+x].

// rotation offsets for the rho step, in pi-orbit order starting from lane (1,0)
var rhoOffsets = [24]uint{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// piLane[t] is the flat index of the t-th position on the (x,y) -> (y,2x+3y)
// orbit, i.e. where the lane rotated at step t lands.
var piLane = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// keccakF1600 applies the full 24-round Keccak-f[1600] permutation in place.
func keccakF1600(a *[25]uint64) {
	var c, d [5]uint64
	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for i := 0; i < 25; i++ {
			a[i] ^= d[i%5]
		}

		// rho and pi, walking the orbit with a single carried lane
		cur := a[1]
		for t := 0; t < 24; t++ {
			idx := piLane[t]
			cur, a[idx] = a[idx], bits.RotateLeft64(cur, int(rhoOffsets[t]))
		}

		// chi, row by row
		for y := 0; y < 25; y += 5 {
			c[0], c[1], c[2], c[3], c[4] = a[y], a[y+1], a[y+2], a[y+3], a[y+4]
			for x := 0; x < 5; x++ {
				a[y+x] = c[x] ^ (^c[(x+1)%5] & c[(x+2)%5])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}
