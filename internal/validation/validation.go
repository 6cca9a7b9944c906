package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the project's custom rules registered.
func New() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("even", validateEven); err != nil {
		return nil, err
	}
	return validate, nil
}

// validateEven accepts integer fields holding an even value.
func validateEven(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() { // nolint: exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int()%2 == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fl.Field().Uint()%2 == 0
	default:
		return false
	}
}
