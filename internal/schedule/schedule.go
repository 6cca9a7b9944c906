// Package schedule derives per-round subkeys from a master key.
//
// Two strategies exist and stay separate: HalvesShift (the S-DES style
// permute/split/rotate/compress schedule) and WordExpansion (the S-AES style
// word recurrence with a substitution-based g function).
package schedule

import (
	"fmt"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// Kind tags the key-schedule algorithm of a variant.
type Kind int

const (
	HalvesShift Kind = iota + 1
	WordExpansion
)

func (k Kind) String() string {
	switch k {
	case HalvesShift:
		return "halves-shift"
	case WordExpansion:
		return "word-expansion"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Subkeys is the ordered subkey set derived from one key. It lives for a
// single encrypt or decrypt call and is never mutated.
type Subkeys []bits.Block

// Reversed returns the set in reverse order, the consumption order of the
// Feistel decryption pass.
func (s Subkeys) Reversed() Subkeys {
	out := make(Subkeys, len(s))
	for i, k := range s {
		out[len(s)-1-i] = k
	}
	return out
}

func (s Subkeys) Strings() []string {
	out := make([]string, len(s))
	for i, k := range s {
		out[i] = k.String()
	}
	return out
}

// Schedule is implemented by every key-schedule strategy.
type Schedule interface {
	Kind() Kind
	// KeySize is the master key width in bits.
	KeySize() int
	// SubkeySize is the width of each derived subkey.
	SubkeySize() int
	// Count is the number of subkeys Derive produces.
	Count() int
	// Check validates the schedule's tables; it is run once at variant setup.
	Check() error
	Derive(key bits.Block) (Subkeys, error)
}

func checkKey(s Schedule, key bits.Block) error {
	if key.Len() != s.KeySize() {
		return errs.Size("key", key.Len(), s.KeySize(), "bits")
	}
	return nil
}
