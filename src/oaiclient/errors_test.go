package oaiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "error with code",
			err: &APIError{
				StatusCode: 429,
				Code:       "rate_limit_exceeded",
				Message:    "too many requests",
			},
			expected: "API error 429 (rate_limit_exceeded): too many requests",
		},
		{
			name: "error without code",
			err: &APIError{
				StatusCode: 500,
				Message:    "internal error",
			},
			expected: "API error 500: internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		retryable bool
	}{
		{"server error", &APIError{StatusCode: http.StatusInternalServerError}, true},
		{"bad gateway", &APIError{StatusCode: http.StatusBadGateway}, true},
		{"rate limited", &APIError{StatusCode: http.StatusTooManyRequests}, true},
		{"timeout code", &APIError{StatusCode: 400, Code: "timeout"}, true},
		{"bad request", &APIError{StatusCode: http.StatusBadRequest}, false},
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.IsRetryable())
		})
	}
}

func TestAPIError_IsAuthError(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: http.StatusUnauthorized}).IsAuthError())
	assert.True(t, (&APIError{Code: "invalid_api_key"}).IsAuthError())
	assert.False(t, (&APIError{StatusCode: http.StatusInternalServerError}).IsAuthError())
}
