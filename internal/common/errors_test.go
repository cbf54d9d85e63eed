package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"validation", &ValidationError{Field: "userid", Message: "User ID is required"}, ErrValidation, "userid: User ID is required"},
		{"duplicate", &DuplicateUserError{UserID: "JDOE"}, ErrDuplicateUser, "User JDOE already exists"},
		{"not found", &NotFoundError{ID: "xyz"}, ErrNotFound, "User with id xyz not found"},
		{"remote", &RemoteRequestError{Status: 409, Message: "taken"}, ErrRemoteRequest, "taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNewRemoteRequestError_SynthesizesMessage(t *testing.T) {
	e := NewRemoteRequestError(503, "")
	assert.Equal(t, 503, e.Status)
	assert.Equal(t, "request failed with status 503 (Service Unavailable)", e.Message)

	e = NewRemoteRequestError(599, "")
	assert.Contains(t, e.Message, "unexpected status")

	e = NewRemoteRequestError(400, "Invalid user payload")
	assert.Equal(t, "Invalid user payload", e.Message)
}

func TestStorageError_UnwrapsBoth(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("insert: %w", &StorageError{Op: "insert", Err: cause})

	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, cause)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "insert", se.Op)
}

func TestValidationErrors_AsFirstIssue(t *testing.T) {
	errs := ValidationErrors{
		{Field: "userid", Message: "User ID is required"},
		{Field: "name", Message: "Name is required"},
	}
	err := fmt.Errorf("create: %w", errs)

	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "userid", ve.Field)

	var all ValidationErrors
	require.ErrorAs(t, err, &all)
	assert.Len(t, all, 2)
	assert.Equal(t, "userid: User ID is required (and 1 more)", errs.Error())
}
