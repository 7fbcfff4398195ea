package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/validation"
)

// recordingIngester counts calls and returns a fixed result.
type recordingIngester struct {
	calls []string
	id    string
	err   error
}

func (r *recordingIngester) Ingest(_ context.Context, frameURL string) (string, error) {
	r.calls = append(r.calls, frameURL)
	return r.id, r.err
}

func TestRegistrationService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "Frame URL is required"},
		{"blank", "   ", "Frame URL is required"},
		{"not a url", "not a url", "Invalid URL format"},
		{"missing scheme", "example.com/card", "Invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingester := &recordingIngester{id: "direct-x"}
			svc := NewRegistrationService(ingester, validation.New(), discardLogger())

			res, err := svc.RegisterFrameURL(context.Background(), tt.input)
			assert.Nil(t, res)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, tt.wantMsg, domainErr.Message)
			assert.Empty(t, ingester.calls, "ingester must not run on invalid input")
		})
	}
}

func TestRegistrationService_Success(t *testing.T) {
	ingester := &recordingIngester{id: "direct-abc"}
	svc := NewRegistrationService(ingester, validation.New(), discardLogger())

	res, err := svc.RegisterFrameURL(context.Background(), " https://example.com/card ")
	require.NoError(t, err)

	assert.Equal(t, &RegistrationResult{
		Success: true,
		FrameID: "direct-abc",
		Message: "Frame loaded successfully",
	}, res)
	assert.Equal(t, []string{"https://example.com/card"}, ingester.calls)
}

func TestRegistrationService_IngesterFailure(t *testing.T) {
	ingester := &recordingIngester{err: errors.New("fetch failed")}
	svc := NewRegistrationService(ingester, validation.New(), discardLogger())

	_, err := svc.RegisterFrameURL(context.Background(), "https://example.com/card")

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeDependency, domainErr.Code)
	assert.Equal(t, "Failed to load frame", domainErr.Message)
}

func TestPlaceholderIngester_GeneratesDirectIDs(t *testing.T) {
	ingester := NewPlaceholderIngester(discardLogger())
	ctx := context.Background()

	a, err := ingester.Ingest(ctx, "https://example.com/a")
	require.NoError(t, err)
	b, err := ingester.Ingest(ctx, "https://example.com/a")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "direct-"), a)
	assert.NotEqual(t, a, b)
}
