package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/framearchive/framearchive/internal/service"
)

func (s *Server) registerRegistrationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "loadDirectFrame",
		Method:      http.MethodPost,
		Path:        "/api/load-direct-frame",
		Summary:     "Register frame URL",
		Description: "Validates an externally hosted frame URL and hands it to the ingester.",
		Tags:        []string{"Frames"},
	}, s.handleLoadDirectFrame)
}

// LoadDirectFrameRequest is the request body for registering a frame URL.
// The URL is checked by the registration service so a missing or malformed
// value gets the catalog's 400 message rather than a schema error.
type LoadDirectFrameRequest struct {
	FrameURL string `json:"frameUrl,omitempty" maxLength:"2048" doc:"Absolute URL of the hosted frame"`
}

// LoadDirectFrameInput wraps the registration request for Huma.
type LoadDirectFrameInput struct {
	Body LoadDirectFrameRequest
}

// LoadDirectFrameOutput wraps the registration result for Huma.
type LoadDirectFrameOutput struct {
	Body service.RegistrationResult
}

func (s *Server) handleLoadDirectFrame(ctx context.Context, input *LoadDirectFrameInput) (*LoadDirectFrameOutput, error) {
	result, err := s.services.Registration.RegisterFrameURL(ctx, input.Body.FrameURL)
	if err != nil {
		return nil, err
	}
	return &LoadDirectFrameOutput{Body: *result}, nil
}
