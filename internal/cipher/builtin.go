package cipher

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/round"
	"github.com/AeonDave/toyblock/internal/schedule"
	"github.com/AeonDave/toyblock/internal/tables"
)

// Names of the built-in variants.
const (
	NameSDES    = "sdes"
	NameSAES    = "saes"
	NameSAESMix = "saes-mix"
)

func init() {
	mustRegister(SDES())
	mustRegister(SAES())
	mustRegister(SAESMix())
}

// SDES is the simplified DES: 8-bit block, 10-bit key, two Feistel rounds.
func SDES() Variant {
	return Variant{
		Name:        NameSDES,
		Description: "simplified DES, 2-round Feistel network",
		Structure:   Feistel,
		BlockSize:   8,
		Rounds:      2,
		Schedule: &schedule.HalvesShiftSchedule{
			Size:        10,
			Initial:     tables.Permutation{3, 5, 2, 7, 4, 10, 1, 9, 8, 6},
			Compression: tables.Permutation{6, 3, 7, 4, 8, 5, 10, 9},
			Shifts:      []int{1, 2},
		},
		Initial: tables.Permutation{2, 6, 3, 1, 4, 8, 5, 7},
		Final:   tables.Permutation{4, 1, 3, 5, 7, 2, 8, 6},
		Round: &round.Feistel{
			Expansion: tables.Permutation{4, 1, 2, 3, 2, 3, 4, 1},
			Boxes: []tables.SBox{
				tables.FromRows("S0", 4, 2, [][]uint8{
					{1, 0, 3, 2},
					{3, 2, 1, 0},
					{0, 2, 1, 3},
					{3, 1, 3, 2},
				}),
				tables.FromRows("S1", 4, 2, [][]uint8{
					{0, 1, 2, 3},
					{2, 0, 1, 3},
					{3, 0, 1, 0},
					{2, 1, 0, 3},
				}),
			},
			Output: tables.Permutation{2, 4, 3, 1},
		},
	}
}

// saesSBox is the S-AES nibble substitution.
func saesSBox() tables.SBox {
	return tables.SBox{
		Name: "S-AES S-box",
		In:   4,
		Out:  4,
		Entries: []uint8{
			0x9, 0x4, 0xa, 0xb,
			0xd, 0x1, 0x8, 0x5,
			0x6, 0x2, 0x0, 0x3,
			0xc, 0xe, 0xf, 0x7,
		},
	}
}

func saesSchedule() *schedule.WordExpansionSchedule {
	return &schedule.WordExpansionSchedule{
		WordSize: 8,
		Rotation: 4,
		SBox:     saesSBox(),
		Constants: []bits.Block{
			bits.MustParse("10000000"),
			bits.MustParse("00110000"),
		},
	}
}

// SAES is the simplified AES as a pure substitution/shift network: 16-bit
// block and key, two rounds, no column mixing.
func SAES() Variant {
	return Variant{
		Name:        NameSAES,
		Description: "simplified AES, 2-round SPN without MixColumns",
		Structure:   SPN,
		BlockSize:   16,
		Rounds:      2,
		Schedule:    saesSchedule(),
		SBox:        saesSBox(),
		// 2x2 nibble matrix: swap the second and fourth nibbles.
		Shuffle: tables.Permutation{1, 4, 3, 2},
	}
}

// SAESMix is the textbook simplified AES, which adds MixColumns to the first
// round.
func SAESMix() Variant {
	v := SAES()
	v.Name = NameSAESMix
	v.Description = "simplified AES, 2-round SPN with MixColumns"
	mix := round.SAESMix
	v.Mix = &mix
	return v
}
