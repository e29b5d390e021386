// Package validator plugs go-playground validation into echo's binding flow.
package validator

import (
	domainerrors "fitflex/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps the playground validator so echo can call it on bound
// request structs.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the validator echo uses for every bound request.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Failures surface as the shared
// validation error so the error handler renders them consistently.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
