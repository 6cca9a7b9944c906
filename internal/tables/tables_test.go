package tables

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

func TestPermutationChecks(t *testing.T) {
	qt.Assert(t, qt.IsNil(Permutation{4, 1, 2, 3, 2, 3, 4, 1}.Check("EP", 4)))
	qt.Assert(t, qt.ErrorIs(Permutation{1, 5}.Check("EP", 4), errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorIs(Permutation{}.Check("EP", 4), errs.ErrConfiguration))

	qt.Assert(t, qt.IsNil(Permutation{2, 6, 3, 1, 4, 8, 5, 7}.CheckBijective("IP", 8)))
	qt.Assert(t, qt.ErrorIs(Permutation{1, 1, 2, 3}.CheckBijective("IP", 4), errs.ErrConfiguration))
	qt.Assert(t, qt.ErrorIs(Permutation{1, 2, 3}.CheckBijective("IP", 4), errs.ErrConfiguration))
}

func TestPermutationInverse(t *testing.T) {
	ip := Permutation{2, 6, 3, 1, 4, 8, 5, 7}
	qt.Assert(t, qt.DeepEquals(ip.Inverse(), Permutation{4, 1, 3, 5, 7, 2, 8, 6}))

	b := bits.MustParse("11010010")
	qt.Assert(t, qt.DeepEquals(ip.Inverse().Apply(ip.Apply(b)), b))

	// The S-AES shift is an involution, a longer rotation is not.
	shift := Permutation{1, 4, 3, 2}
	qt.Assert(t, qt.IsTrue(shift.Inverse().Equal(shift)))
	rot := Permutation{2, 3, 4, 5, 6, 7, 8, 1}
	qt.Assert(t, qt.IsFalse(rot.Inverse().Equal(rot)))
}

func TestSBoxTotality(t *testing.T) {
	good := SBox{Name: "S", In: 4, Out: 4, Entries: []uint8{9, 4, 10, 11, 13, 1, 8, 5, 6, 2, 0, 3, 12, 14, 15, 7}}
	qt.Assert(t, qt.IsNil(good.CheckBijective()))

	tests := []struct {
		name string
		box  SBox
	}{
		{"missing entry", SBox{Name: "S", In: 4, Out: 4, Entries: good.Entries[:15]}},
		{"value out of range", SBox{Name: "S", In: 2, Out: 2, Entries: []uint8{0, 1, 2, 4}}},
		{"zero width", SBox{Name: "S", In: 0, Out: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt.Assert(t, qt.ErrorIs(tt.box.Check(), errs.ErrConfiguration))
		})
	}

	dup := SBox{Name: "S", In: 2, Out: 2, Entries: []uint8{0, 1, 1, 3}}
	qt.Assert(t, qt.IsNil(dup.Check()))
	qt.Assert(t, qt.ErrorIs(dup.CheckBijective(), errs.ErrConfiguration))

	narrowing := FromRows("S0", 4, 2, [][]uint8{{1, 0, 3, 2}, {3, 2, 1, 0}, {0, 2, 1, 3}, {3, 1, 3, 2}})
	qt.Assert(t, qt.IsNil(narrowing.Check()))
	qt.Assert(t, qt.ErrorIs(narrowing.CheckBijective(), errs.ErrConfiguration))
}

func TestSBoxInverseAndSubstitute(t *testing.T) {
	box := SBox{Name: "S", In: 4, Out: 4, Entries: []uint8{9, 4, 10, 11, 13, 1, 8, 5, 6, 2, 0, 3, 12, 14, 15, 7}}
	inv := box.Inverse()
	for v := 0; v < 16; v++ {
		qt.Assert(t, qt.Equals(inv.Lookup(box.Lookup(uint8(v))), uint8(v)))
	}

	in := bits.MustParse("0000111110100101")
	out := box.Substitute(in)
	qt.Assert(t, qt.Equals(out.String(), "1001011100000001"))
	qt.Assert(t, qt.DeepEquals(inv.Substitute(out), in))
}

func TestLookupOuterInnerNeedsTwoBits(t *testing.T) {
	narrow := SBox{Name: "S1bit", In: 1, Out: 1, Entries: []uint8{1, 0}}
	qt.Assert(t, qt.IsNil(narrow.Check()))
	qt.Assert(t, qt.PanicMatches(func() {
		narrow.LookupOuterInner(bits.MustParse("1"))
	}, `configuration: S1bit: row/column addressing needs at least 2 input bits, have 1`))
}

func TestLookupOuterInner(t *testing.T) {
	s0 := FromRows("S0", 4, 2, [][]uint8{{1, 0, 3, 2}, {3, 2, 1, 0}, {0, 2, 1, 3}, {3, 1, 3, 2}})
	tests := []struct {
		in   string
		want string
	}{
		// row = b0 b3, column = b1 b2
		{"0000", "01"}, // row 0, col 0 -> 1
		{"0001", "11"}, // row 1, col 0 -> 3
		{"1000", "00"}, // row 2, col 0 -> 0
		{"1111", "10"}, // row 3, col 3 -> 2
		{"0110", "10"}, // row 0, col 3 -> 2
	}
	for _, tt := range tests {
		got := s0.LookupOuterInner(bits.MustParse(tt.in))
		qt.Check(t, qt.Equals(got.String(), tt.want), qt.Commentf("input %s", tt.in))
	}
}
