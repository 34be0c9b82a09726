package usecase

import "errors"

// ErrValidation prefixes every request validation failure.
var ErrValidation = errors.New("validation failed")

// UserError is a failure whose message is shown to the user as is.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

func userError(msg string) error {
	return &UserError{Message: msg}
}

// ConfirmationError asks the caller to repeat the request with an explicit
// confirmation after showing Prompt.
type ConfirmationError struct {
	Prompt string
}

func (e *ConfirmationError) Error() string { return "confirmation required: " + e.Prompt }
