// Package round implements the non-linear mixing steps of the cipher
// variants: the Feistel half-block function and the SPN layers.
package round

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/tables"
)

// Feistel is the F-function of an S-DES style cipher.
//
// Apply expands the right half, XORs it with the subkey, runs each group
// through its S-box, permutes the concatenated outputs and XORs them into the
// left half. The right half passes through untouched; swapping halves is a
// separate pipeline stage.
type Feistel struct {
	Expansion tables.Permutation // EP
	Boxes     []tables.SBox      // S0, S1, ...
	Output    tables.Permutation // P4
}

// Check validates the tables against the block width. It runs once at setup.
func (f *Feistel) Check(blockSize, subkeySize int) error {
	half := blockSize / 2
	if err := f.Expansion.Check("expansion permutation", half); err != nil {
		return err
	}
	if len(f.Expansion) != subkeySize {
		return errs.Config("expansion permutation", "produces %d bits, subkeys have %d", len(f.Expansion), subkeySize)
	}
	if len(f.Boxes) == 0 {
		return errs.Config("feistel", "no substitution boxes")
	}
	in, out := 0, 0
	for _, box := range f.Boxes {
		if err := box.Check(); err != nil {
			return err
		}
		if box.In < 2 {
			return errs.Config(box.Name, "row/column addressing needs at least 2 input bits")
		}
		in += box.In
		out += box.Out
	}
	if in != len(f.Expansion) {
		return errs.Config("feistel", "boxes consume %d bits, expansion yields %d", in, len(f.Expansion))
	}
	if err := f.Output.Check("output permutation", out); err != nil {
		return err
	}
	if len(f.Output) != half {
		return errs.Config("output permutation", "produces %d bits, half block is %d", len(f.Output), half)
	}
	return nil
}

// Apply runs one round on block with subkey and returns (L ⊕ F(R, K)) || R.
func (f *Feistel) Apply(block, subkey bits.Block) bits.Block {
	left, right := block.Halves()
	mixed := bits.Xor(f.Expansion.Apply(right), subkey)

	var sboxOut bits.Block
	offset := 0
	for _, box := range f.Boxes {
		sboxOut = append(sboxOut, box.LookupOuterInner(mixed[offset:offset+box.In])...)
		offset += box.In
	}
	return bits.Concat(bits.Xor(left, f.Output.Apply(sboxOut)), right)
}

// Swap exchanges the two halves of block.
func Swap(block bits.Block) bits.Block {
	left, right := block.Halves()
	return bits.Concat(right, left)
}
