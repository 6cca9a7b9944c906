package round

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// Mix multiplies every column of the nibble state by a matrix over GF(2^4).
// The state is read column-major: with a 2-row matrix the nibbles n0 n1 form
// column 0, n2 n3 column 1, and so on.
type Mix struct {
	Poly    uint8 // reduction polynomial without the x^4 term, 0x3 for x^4+x+1
	Matrix  [][]uint8
	Inverse [][]uint8
}

// SAESMix is the S-AES MixColumns layer over x^4+x+1.
var SAESMix = Mix{
	Poly:    0x3,
	Matrix:  [][]uint8{{1, 4}, {4, 1}},
	Inverse: [][]uint8{{9, 2}, {2, 9}},
}

func gfMul(a, b, poly uint8) uint8 {
	var p uint8
	for i := 0; i < 4; i++ {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x8
		a = (a << 1) & 0xf
		if carry != 0 {
			a ^= poly
		}
		b >>= 1
	}
	return p
}

// Check verifies the matrices are square, sized alike, hold only nibbles,
// and are inverse to each other.
func (m *Mix) Check(blockSize int) error {
	n := len(m.Matrix)
	if n == 0 || len(m.Inverse) != n {
		return errs.Config("mix columns", "matrix and inverse must be non-empty and the same size")
	}
	if blockSize%(4*n) != 0 {
		return errs.Config("mix columns", "%d-bit state is not a whole number of %d-nibble columns", blockSize, n)
	}
	for i := 0; i < n; i++ {
		if len(m.Matrix[i]) != n || len(m.Inverse[i]) != n {
			return errs.Config("mix columns", "row %d is not square", i)
		}
		for j := 0; j < n; j++ {
			if m.Matrix[i][j] > 0xf || m.Inverse[i][j] > 0xf {
				return errs.Config("mix columns", "entry (%d,%d) is not a 4-bit value", i, j)
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var acc uint8
			for k := 0; k < n; k++ {
				acc ^= gfMul(m.Matrix[i][k], m.Inverse[k][j], m.Poly)
			}
			want := uint8(0)
			if i == j {
				want = 1
			}
			if acc != want {
				return errs.Config("mix columns", "inverse matrix does not invert the forward matrix")
			}
		}
	}
	return nil
}

func (m *Mix) apply(state bits.Block, matrix [][]uint8) bits.Block {
	n := len(matrix)
	nibbles := state.Split(4)
	out := make(bits.Block, 0, len(state))
	for c := 0; c < len(nibbles); c += n {
		for i := 0; i < n; i++ {
			var acc uint8
			for k := 0; k < n; k++ {
				acc ^= gfMul(matrix[i][k], uint8(nibbles[c+k].Uint()), m.Poly)
			}
			out = append(out, bits.FromUint(uint64(acc), 4)...)
		}
	}
	return out
}

func (m *Mix) Forward(state bits.Block) bits.Block { return m.apply(state, m.Matrix) }
func (m *Mix) Backward(state bits.Block) bits.Block { return m.apply(state, m.Inverse) }
