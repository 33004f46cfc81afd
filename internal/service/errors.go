package service

import (
	"errors"
	"fmt"

	"github.com/RespawnSociety/MesinKasir/pkg/validator"
)

// Error taxonomy. Services wrap these with fmt.Errorf("%w: ...") and the
// HTTP layer maps them to status codes with errors.Is.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrValidationFailed    = errors.New("validation failed")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidState        = errors.New("invalid state")
)

// ValidationError carries per-field failures alongside ErrValidationFailed.
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	first := e.Fields[0]
	return fmt.Sprintf("%s: field '%s' failed on tag '%s'", ErrValidationFailed, first.FailedField, first.Tag)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// validate runs struct validation and converts failures into a ValidationError.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
