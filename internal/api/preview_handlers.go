package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerPreviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPreviewImage",
		Method:      http.MethodGet,
		Path:        "/api/og",
		Summary:     "Preview image",
		Description: "Renders a 1200x630 PNG card featuring the newest frames, or the newest matches for q",
		Tags:        []string{"Preview"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG image",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, s.handlePreviewImage)
}

// PreviewInput contains parameters for the preview image.
type PreviewInput struct {
	Query   string `query:"q" maxLength:"200" doc:"Search text to feature matching frames"`
	Version string `query:"v" doc:"Cache-busting digest; ignored by the server"`
}

// PreviewOutput is a PNG body.
type PreviewOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

func (s *Server) handlePreviewImage(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	img, err := s.services.Preview.Render(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	return &PreviewOutput{
		ContentType: "image/png",
		// The URL carries a content digest, so a cached image stays valid for a while.
		CacheControl: "public, max-age=300",
		Body:         img,
	}, nil
}
