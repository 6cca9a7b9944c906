package schedule

import (
	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/tables"
)

// WordExpansionSchedule treats the key as two words w0, w1 and extends them
// per round r with
//
//	w[2r+2] = w[2r] ⊕ g(w[2r+1], RC[r])
//	w[2r+3] = w[2r+2] ⊕ w[2r+1]
//
// where g rotates the word, substitutes it through the S-box and XORs the
// round constant. Subkey r is w[2r] || w[2r+1].
type WordExpansionSchedule struct {
	WordSize  int
	Rotation  int // left rotation applied inside g
	SBox      tables.SBox
	Constants []bits.Block // one per round
}

func (w *WordExpansionSchedule) Kind() Kind { return WordExpansion }
func (w *WordExpansionSchedule) KeySize() int { return 2 * w.WordSize }
func (w *WordExpansionSchedule) SubkeySize() int { return 2 * w.WordSize }
func (w *WordExpansionSchedule) Count() int { return len(w.Constants) + 1 }

func (w *WordExpansionSchedule) Check() error {
	if w.WordSize <= 0 {
		return errs.Config("key schedule", "word size %d must be positive", w.WordSize)
	}
	if err := w.SBox.Check(); err != nil {
		return err
	}
	if w.SBox.In != w.SBox.Out || w.WordSize%w.SBox.In != 0 {
		return errs.Config("key schedule", "%s cannot substitute %d-bit words", w.SBox.Name, w.WordSize)
	}
	for i, rc := range w.Constants {
		if rc.Len() != w.WordSize {
			return errs.Config("round constant", "RC%d is %d bits, want %d", i+1, rc.Len(), w.WordSize)
		}
	}
	return nil
}

func (w *WordExpansionSchedule) g(word, rc bits.Block) bits.Block {
	return bits.Xor(w.SBox.Substitute(bits.RotateLeft(word, w.Rotation)), rc)
}

func (w *WordExpansionSchedule) Derive(key bits.Block) (Subkeys, error) {
	if err := checkKey(w, key); err != nil {
		return nil, err
	}
	w0, w1 := key.Halves()
	words := []bits.Block{w0, w1}
	for r, rc := range w.Constants {
		even := bits.Xor(words[2*r], w.g(words[2*r+1], rc))
		odd := bits.Xor(even, words[2*r+1])
		words = append(words, even, odd)
	}
	keys := make(Subkeys, 0, w.Count())
	for i := 0; i < len(words); i += 2 {
		keys = append(keys, bits.Concat(words[i], words[i+1]))
	}
	return keys, nil
}
