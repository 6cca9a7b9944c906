// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

package cipher

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/round"
	"github.com/AeonDave/toyblock/internal/schedule"
	"github.com/AeonDave/toyblock/internal/tables"
	"github.com/AeonDave/toyblock/internal/validation"
)

// Structure selects how rounds are composed.
type Structure int

const (
	Feistel Structure = iota + 1
	SPN
)

func (s Structure) String() string {
	switch s {
	case Feistel:
		return "feistel"
	case SPN:
		return "spn"
	default:
		return fmt.Sprintf("Structure(%d)", int(s))
	}
}

// Variant is the complete, immutable description of one cipher. Tables are
// injected here rather than referenced from the round code, so adding a
// variant needs no new code.
type Variant struct {
	Name        string            `validate:"required"`
	Description string            `validate:"-"`
	Structure   Structure         `validate:"oneof=1 2"`
	BlockSize   int               `validate:"gt=0,even"`
	Rounds      int               `validate:"min=1"`
	Schedule    schedule.Schedule `validate:"required"`

	// Feistel variants.
	Initial tables.Permutation `validate:"required_if=Structure 1"`
	Final   tables.Permutation `validate:"required_if=Structure 1"`
	Round   *round.Feistel     `validate:"required_if=Structure 1"`

	// SPN variants. Mix is optional.
	SBox    tables.SBox        `validate:"-"`
	Shuffle tables.Permutation `validate:"required_if=Structure 2"`
	Mix     *round.Mix         `validate:"-"`
}

// KeySize is the master key width in bits.
func (v Variant) KeySize() int { return v.Schedule.KeySize() }

var (
	validateOnce sync.Once
	validate     *validator.Validate
	validateErr  error
)

func structValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, validateErr = validation.New()
	})
	return validate, validateErr
}

// check validates the shape of the variant that is independent of the
// structure; structure-specific tables are checked while building.
func (v Variant) check() error {
	vd, err := structValidator()
	if err != nil {
		return err
	}
	if err := vd.Struct(v); err != nil {
		return errs.Config("variant "+v.Name, "%v", err)
	}
	if err := v.Schedule.Check(); err != nil {
		return err
	}
	wantKeys := v.Rounds
	if v.Structure == SPN {
		wantKeys = v.Rounds + 1
	}
	if got := v.Schedule.Count(); got != wantKeys {
		return errs.Config("variant "+v.Name, "%s schedule yields %d subkeys, %d rounds of %s need %d",
			v.Schedule.Kind(), got, v.Rounds, v.Structure, wantKeys)
	}
	return nil
}
