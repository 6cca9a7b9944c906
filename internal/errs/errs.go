// Package errs holds the error taxonomy shared by the cipher core.
//
// Only ValidationError is meant to reach a user. ConfigurationError is fatal
// at variant setup, and InvariantViolation is raised with panic.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("configuration error")
)

// ValidationError reports caller input whose size or alphabet does not match
// what the cipher variant is configured for.
type ValidationError struct {
	Field  string // "plaintext", "key", "text", ...
	Got    int
	Want   int
	Unit   string // "bits" or "characters"
	Reason string // optional free-form detail, used instead of Got/Want when set
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: got %d %s, want exactly %d", e.Field, e.Got, e.Unit, e.Want)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Size builds a ValidationError for a length mismatch.
func Size(field string, got, want int, unit string) *ValidationError {
	return &ValidationError{Field: field, Got: got, Want: want, Unit: unit}
}

// Invalid builds a ValidationError carrying a free-form reason.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a malformed table or variant definition.
type ConfigurationError struct {
	Table  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Table, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Config builds a ConfigurationError.
func Config(table, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Table: table, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation is the panic value raised when an intermediate bit
// vector has an unexpected width. It always indicates a programming defect.
type InvariantViolation struct {
	Stage string
	Got   int
	Want  int
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated at %s: width %d, want %d", v.Stage, v.Got, v.Want)
}

// Width panics with an InvariantViolation unless got == want.
func Width(stage string, got, want int) {
	if got != want {
		panic(InvariantViolation{Stage: stage, Got: got, Want: want})
	}
}
