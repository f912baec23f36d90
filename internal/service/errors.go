package service

import (
	"errors"

	"hospital-management/internal/repository"
	"hospital-management/pkg/utils"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidCredentials     = errors.New("Invalid username/email or password")
	ErrUnrecognizedRole       = errors.New("Unrecognized account role")
	ErrNotFound               = repository.ErrNotFound
	ErrForbidden              = errors.New("access denied")
	ErrConflict               = errors.New("conflict")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrRegistrationIncomplete = errors.New("registration left an incomplete account")
)

// ValidationError carries the single message shown to the caller
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// validate runs struct tag validation and reports the first failure
func validate(input interface{}) error {
	if err := utils.Validate(input); err != nil {
		return invalid(utils.FormatValidationError(err))
	}
	return nil
}
