package bits

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/toyblock/internal/errs"
)

func TestParseAndString(t *testing.T) {
	b, err := Parse("1010000010")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(b.Len(), 10))
	qt.Assert(t, qt.Equals(b.String(), "1010000010"))
	qt.Assert(t, qt.Equals(b.Uint(), uint64(0b1010000010)))

	_, err = Parse("10x1")
	qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))
}

func TestPermute(t *testing.T) {
	in := MustParse("10101010")
	out, err := Permute(in, []int{2, 6, 3, 1, 4, 8, 5, 7})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.String(), "00110011"))
	qt.Assert(t, qt.Equals(in.String(), "10101010"), qt.Commentf("input must not be mutated"))

	// Expansion reuses bits and widens the output.
	out, err = Permute(MustParse("1001"), []int{4, 1, 2, 3, 2, 3, 4, 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.String(), "11000011"))
}

func TestPermuteOutOfRange(t *testing.T) {
	for _, pattern := range [][]int{{1, 5}, {0}, {-3}} {
		_, err := Permute(MustParse("1010"), pattern)
		var ierr *IndexError
		qt.Assert(t, qt.IsTrue(errors.As(err, &ierr)), qt.Commentf("pattern %v", pattern))
		qt.Assert(t, qt.Equals(ierr.Width, 4))
	}
}

func TestRotateLeft(t *testing.T) {
	b := MustParse("10110")
	tests := []struct {
		n    int
		want string
	}{
		{0, "10110"},
		{1, "01101"},
		{2, "11010"},
		{5, "10110"},
		{7, "11010"},
		{-1, "01011"},
	}
	for _, tt := range tests {
		qt.Check(t, qt.Equals(RotateLeft(b, tt.n).String(), tt.want), qt.Commentf("n=%d", tt.n))
	}
	qt.Assert(t, qt.HasLen(RotateLeft(nil, 3), 0))
}

func TestXorAndConcat(t *testing.T) {
	a := MustParse("1100")
	b := MustParse("1010")
	qt.Assert(t, qt.Equals(Xor(a, b).String(), "0110"))
	qt.Assert(t, qt.Equals(Concat(a, b, MustParse("1")).String(), "110010101"))

	qt.Assert(t, qt.PanicMatches(func() { Xor(a, MustParse("1")) }, `.*xor.*`))
}

func TestHalvesAndSplit(t *testing.T) {
	l, r := MustParse("11110000").Halves()
	qt.Assert(t, qt.Equals(l.String(), "1111"))
	qt.Assert(t, qt.Equals(r.String(), "0000"))

	groups := MustParse("000100100011").Split(4)
	qt.Assert(t, qt.HasLen(groups, 3))
	qt.Assert(t, qt.Equals(groups[2].Uint(), uint64(3)))

	qt.Assert(t, qt.PanicMatches(func() { MustParse("101").Halves() }, `.*halves.*`))
}

func TestFromUint(t *testing.T) {
	qt.Assert(t, qt.Equals(FromUint(0x9, 4).String(), "1001"))
	qt.Assert(t, qt.Equals(FromUint(0x2, 2).String(), "10"))
	qt.Assert(t, qt.Equals(FromUint(0xff, 4).String(), "1111"))
}

func TestTextRoundTrip(t *testing.T) {
	for _, s := range []string{"", "ok", "ab", "Hello RSA!", "~ !\x7f"} {
		b, err := TextToBits(s, DefaultCharWidth)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(b.Len(), 8*len(s)))
		back, err := BitsToText(b, DefaultCharWidth)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(back, s))
	}
}

func TestTextErrors(t *testing.T) {
	_, err := TextToBits("€", DefaultCharWidth)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))

	_, err = BitsToText(MustParse("101"), DefaultCharWidth)
	qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))
}
