package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized, ErrStore}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	appErr := NotFound("user", 7)
	assert.Equal(t, "NOT_FOUND: user 7 not found", appErr.Error())
}

func TestStore_KeepsSentinelAndCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp 127.0.0.1:5432: connection refused")
	err := Store("get user by email", cause)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestStore_WrappedStillClassifies(t *testing.T) {
	err := fmt.Errorf("list reservations: %w", Store("list reservations", errors.New("boom")))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_ERROR", appErr.Code)
	assert.True(t, errors.Is(err, ErrStore))
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("user", "email", "ada@example.com")
	assert.Equal(t, "ALREADY_EXISTS", err.Code)
	assert.Contains(t, err.Message, "ada@example.com")
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestAppError_UnwrapEmpty(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Empty(t, appErr.Unwrap())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", Unauthorized("nope"), http.StatusUnauthorized},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"bare not found", ErrNotFound, http.StatusNotFound},
		{"wrapped exists", fmt.Errorf("x: %w", ErrAlreadyExists), http.StatusConflict},
		{"bare store", ErrStore, http.StatusInternalServerError},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
