package tables

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// SBox maps an In-bit value to an Out-bit value. Entries is indexed by the
// integer input, so a total table has exactly 1<<In entries.
type SBox struct {
	Name    string
	In, Out int
	Entries []uint8
}

// FromRows flattens a row/column table (rows addressed by the outer input
// bits, columns by the inner ones) into an SBox.
func FromRows(name string, in, out int, rows [][]uint8) SBox {
	var entries []uint8
	for _, row := range rows {
		entries = append(entries, row...)
	}
	return SBox{Name: name, In: in, Out: out, Entries: entries}
}

// Check verifies totality: 1<<In entries, each below 1<<Out.
func (s SBox) Check() error {
	if s.In <= 0 || s.In > 8 || s.Out <= 0 || s.Out > 8 {
		return errs.Config(s.Name, "unsupported widths %d→%d", s.In, s.Out)
	}
	if len(s.Entries) != 1<<s.In {
		return errs.Config(s.Name, "has %d entries, want %d", len(s.Entries), 1<<s.In)
	}
	for i, v := range s.Entries {
		if int(v) >= 1<<s.Out {
			return errs.Config(s.Name, "entry %d = %d exceeds %d-bit range", i, v, s.Out)
		}
	}
	return nil
}

// CheckBijective verifies that s is total and a permutation of its domain.
func (s SBox) CheckBijective() error {
	if err := s.Check(); err != nil {
		return err
	}
	if s.In != s.Out {
		return errs.Config(s.Name, "not invertible: %d→%d bits", s.In, s.Out)
	}
	seen := make([]bool, len(s.Entries))
	for i, v := range s.Entries {
		if seen[v] {
			return errs.Config(s.Name, "value %d produced twice (second at %d)", v, i)
		}
		seen[v] = true
	}
	return nil
}

// Inverse returns the inverse table. s must be bijective.
func (s SBox) Inverse() SBox {
	inv := SBox{Name: s.Name + "⁻¹", In: s.Out, Out: s.In, Entries: make([]uint8, len(s.Entries))}
	for i, v := range s.Entries {
		inv.Entries[v] = uint8(i)
	}
	return inv
}

// Lookup returns the entry for integer input v.
func (s SBox) Lookup(v uint8) uint8 { return s.Entries[v] }

// Substitute replaces every In-bit group of b through the table. Used by the
// SPN layers and the word key schedule, where In == Out.
func (s SBox) Substitute(b bits.Block) bits.Block {
	out := make(bits.Block, 0, len(b)/s.In*s.Out)
	for _, group := range b.Split(s.In) {
		out = append(out, bits.FromUint(uint64(s.Lookup(uint8(group.Uint()))), s.Out)...)
	}
	return out
}

// LookupOuterInner addresses the table DES-style: the first and last bits of
// the group select the row, the inner bits select the column. For a 4-bit
// group b0 b1 b2 b3 that is row (b0<<1 | b3), column (b1<<1 | b2).
// Boxes narrower than 2 bits have no inner bits and panic with a
// ConfigurationError.
func (s SBox) LookupOuterInner(group bits.Block) bits.Block {
	if s.In < 2 {
		panic(errs.Config(s.Name, "row/column addressing needs at least 2 input bits, have %d", s.In))
	}
	errs.Width(s.Name, len(group), s.In)
	n := len(group)
	row := uint64(group[0])<<1 | uint64(group[n-1])
	col := group[1 : n-1].Uint()
	idx := row<<(n-2) | col
	return bits.FromUint(uint64(s.Entries[idx]), s.Out)
}
