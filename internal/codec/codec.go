// Package codec converts between human-facing input (text or bit strings)
// and the fixed-width blocks a cipher variant operates on.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// Codec maps between strings and blocks of one fixed width.
type Codec struct {
	width    int
	charBits int
}

// New returns a codec for width-bit blocks with charBits bits per character.
// When width is not a whole number of characters the codec still handles
// bit strings, but text conversion is unavailable.
func New(width, charBits int) (Codec, error) {
	if width <= 0 || charBits <= 0 {
		return Codec{}, fmt.Errorf("codec: width %d and character size %d must be positive", width, charBits)
	}
	return Codec{width: width, charBits: charBits}, nil
}

// Width is the block width in bits.
func (c Codec) Width() int { return c.width }

// SupportsText reports whether a block is a whole number of characters.
func (c Codec) SupportsText() bool { return c.width%c.charBits == 0 }

// Chars is the number of characters in one block, or 0 when text is not
// supported.
func (c Codec) Chars() int {
	if !c.SupportsText() {
		return 0
	}
	return c.width / c.charBits
}

// EncodeText converts exactly Chars() characters into a block.
func (c Codec) EncodeText(field, text string) (bits.Block, error) {
	if !c.SupportsText() {
		return nil, errs.Invalid(field, "%d-bit blocks cannot be entered as %d-bit characters", c.width, c.charBits)
	}
	if n := utf8.RuneCountInString(text); n != c.Chars() {
		return nil, errs.Size(field, n, c.Chars(), "characters")
	}
	b, err := bits.TextToBits(text, c.charBits)
	if err != nil {
		return nil, errs.Invalid(field, "%v", err)
	}
	return b, nil
}

// DecodeText converts a block back into its characters.
func (c Codec) DecodeText(b bits.Block) (string, error) {
	if b.Len() != c.width {
		return "", errs.Size("block", b.Len(), c.width, "bits")
	}
	return bits.BitsToText(b, c.charBits)
}

// ParseBits reads a binary string of exactly Width() digits. Spaces and
// underscores are ignored so long keys can be grouped.
func (c Codec) ParseBits(field, s string) (bits.Block, error) {
	cleaned := strings.NewReplacer(" ", "", "_", "").Replace(s)
	b, err := bits.Parse(cleaned)
	if err != nil {
		return nil, errs.Invalid(field, "not a binary string: %q", s)
	}
	if b.Len() != c.width {
		return nil, errs.Size(field, b.Len(), c.width, "bits")
	}
	return b, nil
}

// Format is how a block is written by a human.
type Format string

const (
	FormatBits Format = "bits"
	FormatText Format = "text"
)

// Parse reads s in the given format.
func (c Codec) Parse(field, s string, f Format) (bits.Block, error) {
	switch f {
	case FormatText:
		return c.EncodeText(field, s)
	case FormatBits, "":
		return c.ParseBits(field, s)
	default:
		return nil, fmt.Errorf("codec: unknown format %q", f)
	}
}

// Describe tells a user what a valid entry looks like, for prompts.
func (c Codec) Describe(f Format) string {
	if f == FormatText && c.SupportsText() {
		if c.Chars() == 1 {
			return "exactly 1 character"
		}
		return fmt.Sprintf("exactly %d characters", c.Chars())
	}
	return fmt.Sprintf("%d-bit binary string", c.width)
}
