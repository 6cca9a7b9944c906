// Package tables defines the immutable permutation and substitution tables
// that parameterize a cipher variant, together with the checks run on them
// when a variant is set up.
package tables

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// Permutation is a 1-indexed list of source positions. Its length is the
// output width; entries may repeat (expansions) or skip positions
// (compressions).
type Permutation []int

// Apply permutes b. The table must have passed Check for len(b) beforehand;
// an out-of-range entry here is a programming defect and panics.
func (p Permutation) Apply(b bits.Block) bits.Block {
	out, err := bits.Permute(b, p)
	if err != nil {
		panic(err)
	}
	return out
}

// Check verifies that every entry addresses a bit of an inputWidth-bit block.
func (p Permutation) Check(name string, inputWidth int) error {
	if len(p) == 0 {
		return errs.Config(name, "empty permutation")
	}
	for i, pos := range p {
		if pos < 1 || pos > inputWidth {
			return errs.Config(name, "entry %d (%d) outside 1..%d", i, pos, inputWidth)
		}
	}
	return nil
}

// CheckBijective verifies that p reorders an n-bit block, using every
// position exactly once.
func (p Permutation) CheckBijective(name string, n int) error {
	if len(p) != n {
		return errs.Config(name, "has %d entries, want %d", len(p), n)
	}
	if err := p.Check(name, n); err != nil {
		return err
	}
	seen := make([]bool, n+1)
	for _, pos := range p {
		if seen[pos] {
			return errs.Config(name, "position %d used twice", pos)
		}
		seen[pos] = true
	}
	return nil
}

// Inverse returns the permutation undoing p. p must be bijective.
func (p Permutation) Inverse() Permutation {
	inv := make(Permutation, len(p))
	for i, pos := range p {
		inv[pos-1] = i + 1
	}
	return inv
}

// Equal reports whether both permutations have identical entries.
func (p Permutation) Equal(q Permutation) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
