package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/framearchive/framearchive/internal/service"
)

func (s *Server) registerLegacyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "frameAction",
		Method:      http.MethodPost,
		Path:        "/api/frame-action",
		Summary:     "Legacy frame action",
		Description: "Answers a button press from an older card client with a card of up to six frames.",
		Tags:        []string{"Legacy"},
	}, s.handleFrameAction)
}

// UntrustedData is the client-reported part of a legacy action. Fields the
// responder does not use, such as fid or messageHash, are accepted and ignored.
type UntrustedData struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	ButtonIndex int      `json:"buttonIndex,omitempty" doc:"1-based index of the pressed button"`
	InputText   string   `json:"inputText,omitempty" doc:"Text typed into the card's input"`
}

// FrameActionRequest is the legacy action body.
type FrameActionRequest struct {
	_             struct{}      `json:"-" additionalProperties:"true"`
	UntrustedData UntrustedData `json:"untrustedData,omitempty"`
}

// FrameActionInput wraps the frame action request for Huma.
type FrameActionInput struct {
	Body FrameActionRequest
}

// FrameActionOutput wraps the legacy card for Huma.
type FrameActionOutput struct {
	Body service.LegacyCardResponse
}

func (s *Server) handleFrameAction(ctx context.Context, input *FrameActionInput) (*FrameActionOutput, error) {
	card, err := s.services.Legacy.RespondToAction(ctx, service.LegacyAction{
		ButtonIndex: input.Body.UntrustedData.ButtonIndex,
		InputText:   input.Body.UntrustedData.InputText,
	})
	if err != nil {
		return nil, err
	}

	return &FrameActionOutput{Body: *card}, nil
}
