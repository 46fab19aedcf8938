// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "accountd/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

// New returns an echo.Validator backed by go-playground/validator.
func New() echo.Validator {
	return &requestValidator{validate: validator.New()}
}

// Validate checks the bound request struct against its 'validate' tags.
// Failures surface as ErrValidationFailed so the error middleware maps
// them to a 400 response.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
