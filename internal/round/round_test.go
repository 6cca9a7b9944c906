package round

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/tables"
)

func sdesRound() *Feistel {
	return &Feistel{
		Expansion: tables.Permutation{4, 1, 2, 3, 2, 3, 4, 1},
		Boxes: []tables.SBox{
			tables.FromRows("S0", 4, 2, [][]uint8{{1, 0, 3, 2}, {3, 2, 1, 0}, {0, 2, 1, 3}, {3, 1, 3, 2}}),
			tables.FromRows("S1", 4, 2, [][]uint8{{0, 1, 2, 3}, {2, 0, 1, 3}, {3, 0, 1, 0}, {2, 1, 0, 3}}),
		},
		Output: tables.Permutation{2, 4, 3, 1},
	}
}

var saesBox = tables.SBox{Name: "S", In: 4, Out: 4, Entries: []uint8{
	0x9, 0x4, 0xa, 0xb, 0xd, 0x1, 0x8, 0x5, 0x6, 0x2, 0x0, 0x3, 0xc, 0xe, 0xf, 0x7,
}}

func TestFeistelApply(t *testing.T) {
	f := sdesRound()
	qt.Assert(t, qt.IsNil(f.Check(8, 8)))

	// IP(10101010) with K1 of key 1010000010.
	block := bits.MustParse("00110011")
	out := f.Apply(block, bits.MustParse("10100100"))
	qt.Assert(t, qt.Equals(out.String(), "01100011"))
	qt.Assert(t, qt.Equals(out[4:].String(), block[4:].String()), qt.Commentf("right half passes through"))

	// The round is an involution for a fixed subkey.
	qt.Assert(t, qt.DeepEquals(f.Apply(out, bits.MustParse("10100100")), block))
}

func TestFeistelCheckFailures(t *testing.T) {
	shortOutput := sdesRound()
	shortOutput.Output = tables.Permutation{1, 2, 3}
	wideExpansion := sdesRound()
	wideExpansion.Expansion = tables.Permutation{1, 2, 3, 4, 5, 6, 7, 8}
	partialBox := sdesRound()
	partialBox.Boxes[1].Entries = partialBox.Boxes[1].Entries[:12]

	qt.Assert(t, qt.ErrorIs(shortOutput.Check(8, 8), errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorIs(wideExpansion.Check(8, 8), errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorIs(partialBox.Check(8, 8), errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorIs(sdesRound().Check(8, 10), errs.ErrConfiguration))
}

func TestSwap(t *testing.T) {
	qt.Assert(t, qt.Equals(Swap(bits.MustParse("11100011")).String(), "00111110"))
}

func TestSPNLayersInvert(t *testing.T) {
	spn, err := NewSPN(16, saesBox, tables.Permutation{1, 4, 3, 2}, &SAESMix)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(spn.HasMix()))

	state := bits.MustParse("0110111101101011")
	qt.Assert(t, qt.Equals(spn.Shuffle(state).String(), "0110101101101111"))
	qt.Assert(t, qt.DeepEquals(spn.InvShuffle(spn.Shuffle(state)), state))
	qt.Assert(t, qt.DeepEquals(spn.InvSubstitute(spn.Substitute(state)), state))
	qt.Assert(t, qt.DeepEquals(spn.InvMixColumns(spn.MixColumns(state)), state))

	key := bits.MustParse("1010011100111011")
	qt.Assert(t, qt.DeepEquals(AddRoundKey(AddRoundKey(state, key), key), state))
}

func TestSPNNonInvolutionShuffle(t *testing.T) {
	rot := tables.Permutation{2, 3, 4, 5, 6, 7, 8, 1}
	spn, err := NewSPN(32, saesBox, rot, nil)
	qt.Assert(t, qt.IsNil(err))

	state := bits.MustParse("00010010001101000101011001111000")
	shuffled := spn.Shuffle(state)
	qt.Assert(t, qt.Equals(shuffled.String(), "00100011010001010110011110000001"))
	qt.Assert(t, qt.Not(qt.DeepEquals(spn.Shuffle(shuffled), state)))
	qt.Assert(t, qt.DeepEquals(spn.InvShuffle(shuffled), state))
}

func TestNewSPNRejectsBadTables(t *testing.T) {
	notBijective := tables.SBox{Name: "S", In: 4, Out: 4, Entries: append([]uint8{0}, saesBox.Entries[1:]...)}
	notBijective.Entries[1] = 0

	_, err := NewSPN(16, notBijective, tables.Permutation{1, 4, 3, 2}, nil)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrConfiguration))

	_, err = NewSPN(16, saesBox, tables.Permutation{1, 4, 4, 2}, nil)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrConfiguration))

	badMix := SAESMix
	badMix.Inverse = [][]uint8{{1, 4}, {4, 1}}
	_, err = NewSPN(16, saesBox, tables.Permutation{1, 4, 3, 2}, &badMix)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrConfiguration))
}

func TestMixRejectsWideEntries(t *testing.T) {
	// 0x14 and 0x4 coincide once reduced to a nibble.
	wide := Mix{
		Poly:    0x3,
		Matrix:  [][]uint8{{1, 0x14}, {4, 1}},
		Inverse: [][]uint8{{9, 2}, {2, 9}},
	}
	err := wide.Check(16)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorMatches(err, `configuration: mix columns: entry \(0,1\) is not a 4-bit value`))

	wideInverse := SAESMix
	wideInverse.Inverse = [][]uint8{{9, 2}, {2, 0x19}}
	qt.Assert(t, qt.ErrorIs(wideInverse.Check(16), errs.ErrConfiguration))
	qt.Assert(t, qt.IsNil(SAESMix.Check(16)))
}

func TestGFMul(t *testing.T) {
	tests := []struct{ a, b, want uint8 }{
		{4, 1, 4},
		{4, 4, 3}, // x^4 = x + 1
		{9, 2, 1}, // 9·2 = x^4 + x = 1
		{0xf, 0xf, 0xa},
		{0, 7, 0},
	}
	for _, tt := range tests {
		qt.Check(t, qt.Equals(gfMul(tt.a, tt.b, 0x3), tt.want), qt.Commentf("%d·%d", tt.a, tt.b))
	}
}
