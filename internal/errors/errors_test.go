package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "network error type",
			errType:  ErrTypeNetwork,
			expected: "NETWORK",
		},
		{
			name:     "api error type",
			errType:  ErrTypeAPI,
			expected: "API",
		},
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeAPI,
				Message: "SIDRA returned an empty body",
				Cause:   nil,
			},
			wantMessage: "[API] SIDRA returned an empty body",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeNetwork,
				Message: "Failed to reach SIDRA",
				Cause:   fmt.Errorf("connection refused"),
			},
			wantMessage: "[NETWORK] Failed to reach SIDRA: connection refused",
		},
		{
			name: "storage error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "Failed to write parquet file",
				Cause:   errors.New("no space left on device"),
			},
			wantMessage: "[STORAGE] Failed to write parquet file: no space left on device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewParsingError("could not parse period", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewNetworkError("request failed", nil).
		WithContext("url", "https://apisidra.ibge.gov.br/values").
		WithContext("attempt", 2)

	assert.Equal(t, "https://apisidra.ibge.gov.br/values", err.Context["url"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{
			name:     "direct app error",
			err:      NewAPIError("bad status", nil),
			expected: ErrTypeAPI,
		},
		{
			name:     "wrapped app error",
			err:      fmt.Errorf("fetch stage: %w", NewNetworkError("timeout", nil)),
			expected: ErrTypeNetwork,
		},
		{
			name:     "plain error",
			err:      errors.New("not an app error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeOf(tt.err))
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"network", NewNetworkError("n", cause), ErrTypeNetwork},
		{"api", NewAPIError("a", cause), ErrTypeAPI},
		{"parsing", NewParsingError("p", cause), ErrTypeParsing},
		{"storage", NewStorageError("s", cause), ErrTypeStorage},
		{"config", NewConfigError("c", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, cause, tt.err.Cause)
		})
	}

	verr := NewValidationError("window must be positive")
	assert.Equal(t, ErrTypeValidation, verr.Type)
	assert.Nil(t, verr.Cause)
}
