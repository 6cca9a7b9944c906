package codec_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/codec"
	"github.com/AeonDave/toyblock/internal/errs"
)

func newCodec(t *testing.T, width int) codec.Codec {
	t.Helper()
	c, err := codec.New(width, bits.DefaultCharWidth)
	qt.Assert(t, qt.IsNil(err))
	return c
}

func TestEncodeTextTwoCharacterBlock(t *testing.T) {
	c := newCodec(t, 16)
	qt.Assert(t, qt.Equals(c.Chars(), 2))

	b, err := c.EncodeText("plaintext", "ok")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(b.String(), "0110111101101011"))

	text, err := c.DecodeText(b)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(text, "ok"))
}

func TestEncodeTextRejectsWrongLength(t *testing.T) {
	c := newCodec(t, 16)
	for _, input := range []string{"", "o", "oka", "long input"} {
		_, err := c.EncodeText("plaintext", input)
		qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation), qt.Commentf("input %q", input))

		var verr *errs.ValidationError
		qt.Assert(t, qt.IsTrue(errors.As(err, &verr)))
		qt.Assert(t, qt.Equals(verr.Want, 2))
		qt.Assert(t, qt.Equals(verr.Unit, "characters"))
	}
}

func TestEncodeTextRejectsWideRunes(t *testing.T) {
	c := newCodec(t, 16)
	_, err := c.EncodeText("key", "é€")
	qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))
}

func TestTextUnsupportedForOddWidths(t *testing.T) {
	c := newCodec(t, 10)
	qt.Assert(t, qt.IsFalse(c.SupportsText()))
	qt.Assert(t, qt.Equals(c.Chars(), 0))
	_, err := c.EncodeText("key", "a")
	qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))
	qt.Assert(t, qt.Equals(c.Describe(codec.FormatText), "10-bit binary string"))
}

func TestParseBits(t *testing.T) {
	c := newCodec(t, 10)
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "1010000010", "1010000010", true},
		{"grouped", "10100 00010", "1010000010", true},
		{"underscores", "10_1000_0010", "1010000010", true},
		{"too short", "101", "", false},
		{"too long", "10100000101", "", false},
		{"not binary", "10100000a0", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := c.ParseBits("key", tt.input)
			if !tt.ok {
				qt.Assert(t, qt.ErrorIs(err, errs.ErrValidation))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(b.String(), tt.want))
		})
	}
}

func TestParseDispatchesOnFormat(t *testing.T) {
	c := newCodec(t, 8)
	fromText, err := c.Parse("plaintext", "A", codec.FormatText)
	qt.Assert(t, qt.IsNil(err))
	fromBits, err := c.Parse("plaintext", "01000001", codec.FormatBits)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(fromText, fromBits))

	_, err = c.Parse("plaintext", "A", codec.Format("hex"))
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(c.Describe(codec.FormatText), "exactly 1 character"))
}
