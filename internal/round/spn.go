package round

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/tables"
)

// SPN holds the layers of an S-AES style substitution-permutation round.
// Build it with NewSPN so the inverse layers are derived up front.
type SPN struct {
	box     tables.SBox
	invBox  tables.SBox
	shuffle tables.Permutation // over nibble positions, 1-indexed
	unshuf  tables.Permutation
	mix     *Mix
}

// NewSPN validates the layers for a blockSize-bit state and derives their
// inverses. The shuffle is inverted explicitly even when it happens to be an
// involution.
func NewSPN(blockSize int, box tables.SBox, shuffle tables.Permutation, mix *Mix) (*SPN, error) {
	if err := box.CheckBijective(); err != nil {
		return nil, err
	}
	if blockSize%box.In != 0 {
		return nil, errs.Config(box.Name, "%d-bit state is not a whole number of %d-bit groups", blockSize, box.In)
	}
	if err := shuffle.CheckBijective("nibble shuffle", blockSize/box.In); err != nil {
		return nil, err
	}
	if mix != nil {
		if box.In != 4 {
			return nil, errs.Config("mix columns", "needs 4-bit groups, have %d", box.In)
		}
		if err := mix.Check(blockSize); err != nil {
			return nil, err
		}
	}
	return &SPN{
		box:     box,
		invBox:  box.Inverse(),
		shuffle: shuffle,
		unshuf:  shuffle.Inverse(),
		mix:     mix,
	}, nil
}

// HasMix reports whether the rounds include a column-mixing layer.
func (s *SPN) HasMix() bool { return s.mix != nil }

// AddRoundKey XORs the whole state with a subkey.
func AddRoundKey(state, key bits.Block) bits.Block { return bits.Xor(state, key) }

func (s *SPN) Substitute(state bits.Block) bits.Block { return s.box.Substitute(state) }
func (s *SPN) InvSubstitute(state bits.Block) bits.Block { return s.invBox.Substitute(state) }

// Shuffle moves whole groups: output group i is input group shuffle[i].
func (s *SPN) Shuffle(state bits.Block) bits.Block { return s.moveGroups(state, s.shuffle) }
func (s *SPN) InvShuffle(state bits.Block) bits.Block { return s.moveGroups(state, s.unshuf) }

func (s *SPN) moveGroups(state bits.Block, order tables.Permutation) bits.Block {
	groups := state.Split(s.box.In)
	moved := make([]bits.Block, len(order))
	for i, pos := range order {
		moved[i] = groups[pos-1]
	}
	return bits.Concat(moved...)
}

func (s *SPN) MixColumns(state bits.Block) bits.Block { return s.mix.Forward(state) }
func (s *SPN) InvMixColumns(state bits.Block) bits.Block { return s.mix.Backward(state) }
