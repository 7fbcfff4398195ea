package service

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/id"
	"github.com/framearchive/framearchive/internal/validation"
)

// Registration messages.
const (
	msgURLRequired  = "Frame URL is required"
	msgURLInvalid   = "Invalid URL format"
	msgIngestFailed = "Failed to load frame"
	msgRegistered   = "Frame loaded successfully"
)

// Ingester turns a validated frame URL into a catalog entry id.
type Ingester interface {
	Ingest(ctx context.Context, frameURL string) (string, error)
}

// PlaceholderIngester accepts every URL without fetching or persisting it and
// hands back a fresh "direct-" id.
type PlaceholderIngester struct {
	logger *slog.Logger
}

// NewPlaceholderIngester creates a PlaceholderIngester.
func NewPlaceholderIngester(logger *slog.Logger) *PlaceholderIngester {
	return &PlaceholderIngester{logger: logger}
}

// Ingest implements Ingester.
func (p *PlaceholderIngester) Ingest(ctx context.Context, frameURL string) (string, error) {
	frameID, err := id.NewDirectID()
	if err != nil {
		return "", err
	}
	p.logger.InfoContext(ctx, "direct frame registered", "frame_id", frameID, "frame_url", frameURL)
	return frameID, nil
}

// RegistrationResult is returned for an accepted URL.
type RegistrationResult struct {
	Success bool   `json:"success"`
	FrameID string `json:"frameId"`
	Message string `json:"message"`
}

// RegistrationService validates externally hosted frame URLs and hands them to an Ingester.
type RegistrationService struct {
	ingester  Ingester
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(ingester Ingester, validator *validation.Validator, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		ingester:  ingester,
		validator: validator,
		logger:    logger,
	}
}

// RegisterFrameURL validates raw and delegates it to the ingester.
// Nothing is ingested when validation fails.
func (s *RegistrationService) RegisterFrameURL(ctx context.Context, raw string) (*RegistrationResult, error) {
	frameURL := strings.TrimSpace(raw)
	if frameURL == "" {
		return nil, domainerrors.Validation(msgURLRequired)
	}
	if !s.validator.Valid(frameURL, "url") {
		return nil, domainerrors.Validation(msgURLInvalid)
	}

	frameID, err := s.ingester.Ingest(ctx, frameURL)
	if err != nil {
		s.logger.ErrorContext(ctx, "frame ingestion failed", "frame_url", frameURL, "error", err)
		return nil, domainerrors.Dependency(msgIngestFailed, err)
	}

	return &RegistrationResult{
		Success: true,
		FrameID: frameID,
		Message: msgRegistered,
	}, nil
}
