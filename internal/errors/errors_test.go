package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeDependency, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("Frame not found")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.False(t, Is(err, ErrDependency))
}

func TestDependency_KeepsCauseOutOfMessage(t *testing.T) {
	cause := stderrors.New("pq: connection refused")
	err := Dependency("Failed to fetch frames", cause)

	assert.Equal(t, "Failed to fetch frames", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrDependency))
}

func TestWrap_KeepsCodeAndCause(t *testing.T) {
	cause := stderrors.New("png: invalid format")
	err := Wrap(cause, CodeInternal, "Failed to render preview")

	assert.Equal(t, CodeInternal, err.Code)
	assert.Equal(t, "Failed to render preview", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.GetStatus())
}

func TestRateLimited(t *testing.T) {
	err := RateLimited("slow down")

	assert.Equal(t, CodeRateLimited, err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus())
	assert.Nil(t, err.Unwrap())
}

func TestError_AsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("decode body: %w", Validation("field frameUrl is required"))

	var domainErr *Error
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Equal(t, "field frameUrl is required", domainErr.Message)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
}

func TestError_ClientBody(t *testing.T) {
	err := Dependency("Failed to fetch frames", stderrors.New("dial tcp: connection refused"))

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	assert.JSONEq(t, `{"error":"Failed to fetch frames","code":"DEPENDENCY"}`, string(data))
	assert.Equal(t, http.StatusInternalServerError, err.GetStatus())
}
