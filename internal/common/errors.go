package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is matching. The typed errors below unwrap to them.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateUser     = errors.New("duplicate user")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrStorage           = errors.New("storage failure")
	ErrRemoteUnavailable = errors.New("remote unavailable")
	ErrRemoteRequest     = errors.New("remote request failed")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DuplicateUserError is returned when a userid is already taken.
type DuplicateUserError struct {
	UserID string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("User %s already exists", e.UserID)
}

func (e *DuplicateUserError) Unwrap() error { return ErrDuplicateUser }

// NotFoundError is returned for lookups and updates on a missing record id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with id %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// RemoteRequestError means the remote service answered and rejected the request.
type RemoteRequestError struct {
	Status  int
	Message string
}

func (e *RemoteRequestError) Error() string {
	return e.Message
}

func (e *RemoteRequestError) Unwrap() error { return ErrRemoteRequest }

// NewRemoteRequestError builds a RemoteRequestError, synthesizing the message
// from the status code when the body did not carry one.
func NewRemoteRequestError(status int, message string) *RemoteRequestError {
	if message == "" {
		text := http.StatusText(status)
		if text == "" {
			text = "unexpected status"
		}
		message = fmt.Sprintf("request failed with status %d (%s)", status, text)
	}
	return &RemoteRequestError{Status: status, Message: message}
}

// StorageError wraps a local persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the driver error.
func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// ValidationErrors collects every field issue found in one payload.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	msg := v[0].Error()
	if len(v) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(v)-1)
	}
	return msg
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v)+1)
	errs = append(errs, ErrValidation)
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}
