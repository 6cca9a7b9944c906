package schedule

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/tables"
)

// HalvesShiftSchedule permutes the key, splits it into halves, and for every
// round rotates both halves left by that round's shift before compressing
// them into a subkey. Rotations accumulate across rounds.
type HalvesShiftSchedule struct {
	Size        int                // key width in bits
	Initial     tables.Permutation // P10 in S-DES
	Compression tables.Permutation // P8 in S-DES
	Shifts      []int              // one per round
}

func (h *HalvesShiftSchedule) Kind() Kind { return HalvesShift }
func (h *HalvesShiftSchedule) KeySize() int { return h.Size }
func (h *HalvesShiftSchedule) SubkeySize() int { return len(h.Compression) }
func (h *HalvesShiftSchedule) Count() int { return len(h.Shifts) }

func (h *HalvesShiftSchedule) Check() error {
	if h.Size <= 0 || h.Size%2 != 0 {
		return errs.Config("key schedule", "key size %d must be positive and even", h.Size)
	}
	if err := h.Initial.CheckBijective("key initial permutation", h.Size); err != nil {
		return err
	}
	if err := h.Compression.Check("key compression permutation", h.Size); err != nil {
		return err
	}
	if len(h.Shifts) == 0 {
		return errs.Config("key schedule", "no rounds")
	}
	return nil
}

func (h *HalvesShiftSchedule) Derive(key bits.Block) (Subkeys, error) {
	if err := checkKey(h, key); err != nil {
		return nil, err
	}
	left, right := h.Initial.Apply(key).Halves()
	keys := make(Subkeys, 0, len(h.Shifts))
	for _, shift := range h.Shifts {
		left = bits.RotateLeft(left, shift)
		right = bits.RotateLeft(right, shift)
		keys = append(keys, h.Compression.Apply(bits.Concat(left, right)))
	}
	return keys, nil
}
