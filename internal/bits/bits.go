// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

// Package bits implements fixed-length bit vectors and the permutation,
// rotation and text conversions the cipher layers are built from.
package bits

import (
	"fmt"
	"strings"

	"github.com/AeonDave/toyblock/internal/errs"
)

// Block is an ordered sequence of bits, one bit per element, most significant
// first. Blocks are values: no function in this package mutates its input.
type Block []uint8

// IndexError is returned by Permute when a pattern entry falls outside the
// input's bit range.
type IndexError struct {
	Entry int // offending 1-indexed pattern entry
	Width int // width of the input block
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bits: permutation entry %d out of range for %d-bit input", e.Entry, e.Width)
}

// Parse converts a string of '0' and '1' characters into a Block.
func Parse(s string) (Block, error) {
	b := make(Block, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			b[i] = 1
		default:
			return nil, errs.Invalid("bit string", "unexpected character %q at position %d", s[i], i)
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// package-level constants.
func MustParse(s string) Block {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Block) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// Len reports the width of the block in bits.
func (b Block) Len() int { return len(b) }

// Clone returns an independent copy.
func (b Block) Clone() Block { return append(Block(nil), b...) }

// Equal reports whether a and b hold the same bits.
func Equal(a, b Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FromUint encodes the low width bits of v, most significant first.
func FromUint(v uint64, width int) Block {
	b := make(Block, width)
	for i := range b {
		b[i] = uint8(v>>(width-1-i)) & 1
	}
	return b
}

// Uint decodes the block as an unsigned integer, most significant bit first.
// Blocks wider than 64 bits keep only the low 64.
func (b Block) Uint() uint64 {
	var v uint64
	for _, bit := range b {
		v = v<<1 | uint64(bit)
	}
	return v
}

// Permute returns a len(pattern)-bit block whose i-th bit is the input bit at
// 1-indexed position pattern[i].
func Permute(b Block, pattern []int) (Block, error) {
	out := make(Block, len(pattern))
	for i, pos := range pattern {
		if pos < 1 || pos > len(b) {
			return nil, &IndexError{Entry: pos, Width: len(b)}
		}
		out[i] = b[pos-1]
	}
	return out, nil
}

// RotateLeft rotates b cyclically by n positions. n is reduced modulo the
// width; negative values rotate right.
func RotateLeft(b Block, n int) Block {
	out := make(Block, len(b))
	if len(b) == 0 {
		return out
	}
	n %= len(b)
	if n < 0 {
		n += len(b)
	}
	copy(out, b[n:])
	copy(out[len(b)-n:], b[:n])
	return out
}

// Xor returns a ⊕ b. Both operands must have the same width.
func Xor(a, b Block) Block {
	errs.Width("xor", len(b), len(a))
	out := make(Block, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Concat joins blocks in order.
func Concat(parts ...Block) Block {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Block, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Halves splits an even-width block into its left and right halves.
func (b Block) Halves() (Block, Block) {
	errs.Width("halves", len(b)%2, 0)
	mid := len(b) / 2
	return b[:mid].Clone(), b[mid:].Clone()
}

// Split cuts b into consecutive groups of size bits. The width must be a
// multiple of size.
func (b Block) Split(size int) []Block {
	if size <= 0 || len(b)%size != 0 {
		panic(errs.InvariantViolation{Stage: "split", Got: len(b), Want: size})
	}
	groups := make([]Block, 0, len(b)/size)
	for i := 0; i < len(b); i += size {
		groups = append(groups, b[i:i+size].Clone())
	}
	return groups
}
