// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	domainerrors "condor/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates an echo.Validator backed by go-playground/validator.
func New() *echoValidator {
	return &echoValidator{validate: playground.New()}
}

// Validate runs struct tag validation and maps failures to the shared
// validation error so the error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
