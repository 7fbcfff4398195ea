package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/framearchive/framearchive/internal/signer"
)

func (s *Server) registerRenderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFrameRenderConfig",
		Method:      http.MethodGet,
		Path:        "/api/frame-list/{id}/render-config",
		Summary:     "Get frame render config",
		Description: "Returns a frame with the proxy routes and signer state the card renderer needs",
		Tags:        []string{"Frames"},
	}, s.handleGetRenderConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "reportUnauthorizedAction",
		Method:      http.MethodPost,
		Path:        "/api/frame-list/{id}/unauthorized-action",
		Summary:     "Report unsigned action",
		Description: "Tells the signer a button on this frame was pressed without a usable signer",
		Tags:        []string{"Signer"},
	}, s.handleUnauthorizedAction)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSigner",
		Method:      http.MethodGet,
		Path:        "/api/signer",
		Summary:     "Get signer state",
		Tags:        []string{"Signer"},
	}, s.handleGetSigner)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logoutSigner",
		Method:        http.MethodPost,
		Path:          "/api/signer/logout",
		Summary:       "Log out signer",
		Tags:          []string{"Signer"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleSignerLogout)
}

// === DTOs ===

// RenderConfigInput contains parameters for getting a render config.
type RenderConfigInput struct {
	ID string `path:"id" doc:"Frame ID"`
}

// RenderSettings is the renderer configuration for one frame.
type RenderSettings struct {
	HomeframeURL     string       `json:"homeframeUrl" doc:"URL of the card to render"`
	FrameActionProxy string       `json:"frameActionProxy" doc:"Path the renderer posts actions through"`
	FrameGetProxy    string       `json:"frameGetProxy" doc:"Path the renderer fetches cards through"`
	Specification    string       `json:"specification" doc:"Card protocol dialect"`
	Signer           signer.State `json:"signer"`
}

// RenderConfigResponse pairs a frame with its render settings.
type RenderConfigResponse struct {
	Frame  FrameResponse  `json:"frame"`
	Render RenderSettings `json:"render"`
}

// RenderConfigOutput wraps the render config for Huma.
type RenderConfigOutput struct {
	Body RenderConfigResponse
}

// UnauthorizedActionRequest is the request body for reporting an unsigned press.
type UnauthorizedActionRequest struct {
	ButtonIndex int `json:"buttonIndex,omitempty" minimum:"0" doc:"1-based index of the pressed button"`
}

// UnauthorizedActionInput wraps the report for Huma.
type UnauthorizedActionInput struct {
	ID   string `path:"id" doc:"Frame ID"`
	Body UnauthorizedActionRequest
}

// UnauthorizedActionResponse acknowledges a report.
type UnauthorizedActionResponse struct {
	Reported bool `json:"reported"`
}

// UnauthorizedActionOutput wraps the acknowledgement for Huma.
type UnauthorizedActionOutput struct {
	Body UnauthorizedActionResponse
}

// SignerOutput wraps the signer state for Huma.
type SignerOutput struct {
	Body signer.State
}

// === Handlers ===

func (s *Server) handleGetRenderConfig(ctx context.Context, input *RenderConfigInput) (*RenderConfigOutput, error) {
	cfg, err := s.services.Render.ConfigFor(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &RenderConfigOutput{
		Body: RenderConfigResponse{
			Frame: toFrameResponse(cfg.Frame),
			Render: RenderSettings{
				HomeframeURL:     cfg.Render.HomeframeURL,
				FrameActionProxy: cfg.Render.FrameActionProxy,
				FrameGetProxy:    cfg.Render.FrameGetProxy,
				Specification:    cfg.Render.Specification,
				Signer:           cfg.Render.Signer,
			},
		},
	}, nil
}

func (s *Server) handleUnauthorizedAction(ctx context.Context, input *UnauthorizedActionInput) (*UnauthorizedActionOutput, error) {
	if err := s.services.Render.ReportUnauthorizedAction(ctx, input.ID, input.Body.ButtonIndex); err != nil {
		return nil, err
	}
	return &UnauthorizedActionOutput{Body: UnauthorizedActionResponse{Reported: true}}, nil
}

func (s *Server) handleGetSigner(_ context.Context, _ *struct{}) (*SignerOutput, error) {
	return &SignerOutput{Body: s.services.Render.SignerState()}, nil
}

func (s *Server) handleSignerLogout(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := s.services.Render.Logout(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}
