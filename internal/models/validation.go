package models

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"
)

var ErrInvalidInput = errors.New("invalid input")

func validateStruct(v any) error {
	vd := validate.Struct(v)
	if !vd.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidInput, vd.Errors.One())
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
