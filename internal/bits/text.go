package bits

import (
	"strings"

	"github.com/AeonDave/toyblock/internal/errs"
)

// DefaultCharWidth is the width used for one character when converting text.
const DefaultCharWidth = 8

// TextToBits encodes every rune of s as a width-bit code point, concatenated
// in character order.
func TextToBits(s string, width int) (Block, error) {
	out := make(Block, 0, len(s)*width)
	for i, r := range []rune(s) {
		if r < 0 || (width < 32 && r >= rune(1)<<width) {
			return nil, errs.Invalid("text", "character %q at position %d does not fit in %d bits", r, i, width)
		}
		out = append(out, FromUint(uint64(r), width)...)
	}
	return out, nil
}

// BitsToText is the inverse of TextToBits.
func BitsToText(b Block, width int) (string, error) {
	if width <= 0 || len(b)%width != 0 {
		return "", errs.Invalid("bits", "%d bits do not split into %d-bit characters", len(b), width)
	}
	var sb strings.Builder
	for _, group := range b.Split(width) {
		sb.WriteRune(rune(group.Uint()))
	}
	return sb.String(), nil
}
