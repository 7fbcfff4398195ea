package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/validation"
)

// DefaultV1FrameURL is loaded when no v1 frame URL is given.
const DefaultV1FrameURL = "https://framesjs.org"

const msgV1URLInvalid = "Invalid V1 frame URL"

// V1Frame wraps an older frame so newer clients can open it.
type V1Frame struct {
	Type    string         `json:"type" example:"frame"`
	Version string         `json:"version" example:"v2"`
	Image   string         `json:"image"`
	Buttons []LegacyButton `json:"buttons"`
	PostURL string         `json:"post_url"`
}

// FrameLoaderService adapts v1 frame URLs into v2 frame descriptors.
type FrameLoaderService struct {
	baseURL   string
	validator *validation.Validator
	logger    *slog.Logger
}

// NewFrameLoaderService creates a loader whose callbacks point under baseURL.
func NewFrameLoaderService(baseURL string, validator *validation.Validator, logger *slog.Logger) *FrameLoaderService {
	return &FrameLoaderService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		validator: validator,
		logger:    logger,
	}
}

// Load returns the v2 wrapper for raw, or for DefaultV1FrameURL when raw is blank.
func (s *FrameLoaderService) Load(ctx context.Context, raw string) (*V1Frame, error) {
	v1URL, err := s.ResolveURL(raw)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "v1 frame loaded", "v1_url", v1URL)

	return &V1Frame{
		Type:    "frame",
		Version: "v2",
		Image:   s.baseURL + "/api/frame-image?v1Url=" + url.QueryEscape(v1URL),
		Buttons: []LegacyButton{
			{Label: "Load Another V1 Frame", Action: ActionPost},
			{Label: "Visit V1 Frame", Action: ActionLink, Target: v1URL},
		},
		PostURL: s.baseURL + "/api/frame",
	}, nil
}

// ResolveURL applies the default and checks raw is an http(s) URL. Only http
// and https are accepted because the result is used as a redirect target.
func (s *FrameLoaderService) ResolveURL(raw string) (string, error) {
	v1URL := strings.TrimSpace(raw)
	if v1URL == "" {
		return DefaultV1FrameURL, nil
	}
	if !s.validator.Valid(v1URL, "http_url") {
		return "", domainerrors.Validation(msgV1URLInvalid)
	}
	return v1URL, nil
}
