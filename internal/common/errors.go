// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Repository errors.
	ErrNotARepository = errors.New("not a git repository")
	ErrSyncFailed     = errors.New("synchronization failed")

	// Inference errors.
	ErrInferenceUnavailable = errors.New("inference service unavailable")
	ErrEmptyInference       = errors.New("inference returned no usable folder name")

	// Filing errors.
	ErrInvalidFolder = errors.New("invalid folder name")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
	Hints       []string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error. Hints are remediation
// steps printed one per line after the message.
func NewUserError(userMessage string, err error, hints ...string) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
		Hints:       hints,
	}
}

// RemediationHints returns the hints attached to the error.
func (e *UserError) RemediationHints() []string {
	return e.Hints
}

// HintedError is an error that knows how the user can fix it.
type HintedError interface {
	error
	RemediationHints() []string
}

// UserHints returns the remediation hints carried anywhere in err's chain.
func UserHints(err error) []string {
	var hinted HintedError
	if errors.As(err, &hinted) {
		return hinted.RemediationHints()
	}
	return nil
}
