package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAlreadyApproved    = errors.New("record already approved")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation marks client mistakes that should surface as 400.
	ErrValidation = errors.New("validation")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
