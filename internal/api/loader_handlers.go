package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/framearchive/framearchive/internal/service"
)

func (s *Server) registerLoaderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getV1Frame",
		Method:      http.MethodGet,
		Path:        "/api/frame",
		Summary:     "Wrap v1 frame",
		Description: "Returns a v2 frame descriptor that opens the given v1 frame",
		Tags:        []string{"Legacy"},
	}, s.handleGetV1Frame)

	huma.Register(s.api, huma.Operation{
		OperationID: "postV1Frame",
		Method:      http.MethodPost,
		Path:        "/api/frame",
		Summary:     "Load another v1 frame",
		Description: "Same as the GET form, with the v1 URL typed into the card input",
		Tags:        []string{"Legacy"},
	}, s.handlePostV1Frame)

	huma.Register(s.api, huma.Operation{
		OperationID:   "getV1FrameImage",
		Method:        http.MethodGet,
		Path:          "/api/frame-image",
		Summary:       "Redirect to v1 frame",
		Tags:          []string{"Legacy"},
		DefaultStatus: http.StatusFound,
	}, s.handleV1FrameImage)
}

// V1FrameQuery selects the v1 frame to wrap.
type V1FrameQuery struct {
	V1URL string `query:"v1Url" maxLength:"2048" doc:"v1 frame URL; defaults to https://framesjs.org"`
}

// V1FramePostInput carries the card input of a "Load Another V1 Frame" press.
type V1FramePostInput struct {
	Body struct {
		_     struct{} `json:"-" additionalProperties:"true"`
		Input string   `json:"input,omitempty" maxLength:"2048" doc:"v1 frame URL typed by the user"`
	}
}

// V1FrameOutput wraps the v2 descriptor for Huma.
type V1FrameOutput struct {
	Body service.V1Frame
}

// RedirectOutput is a bare redirect.
type RedirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (s *Server) handleGetV1Frame(ctx context.Context, input *V1FrameQuery) (*V1FrameOutput, error) {
	frame, err := s.services.Loader.Load(ctx, input.V1URL)
	if err != nil {
		return nil, err
	}
	return &V1FrameOutput{Body: *frame}, nil
}

func (s *Server) handlePostV1Frame(ctx context.Context, input *V1FramePostInput) (*V1FrameOutput, error) {
	frame, err := s.services.Loader.Load(ctx, input.Body.Input)
	if err != nil {
		return nil, err
	}
	return &V1FrameOutput{Body: *frame}, nil
}

func (s *Server) handleV1FrameImage(_ context.Context, input *V1FrameQuery) (*RedirectOutput, error) {
	target, err := s.services.Loader.ResolveURL(input.V1URL)
	if err != nil {
		return nil, err
	}
	return &RedirectOutput{Status: http.StatusFound, Location: target}, nil
}
