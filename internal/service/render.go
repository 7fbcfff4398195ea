package service

import (
	"context"
	"log/slog"

	"github.com/framearchive/framearchive/internal/domain"
	"github.com/framearchive/framearchive/internal/signer"
)

// frameProxyPath is where the renderer proxies card GET and POST requests.
const frameProxyPath = "/frames"

// RenderConfig is what the external card renderer needs to display one entry.
// The API layer owns its wire shape.
type RenderConfig struct {
	HomeframeURL     string
	FrameActionProxy string
	FrameGetProxy    string
	Specification    string
	Signer           signer.State
}

// EntryRenderConfig pairs an entry with its render configuration.
type EntryRenderConfig struct {
	Frame  *domain.Entry
	Render RenderConfig
}

// RenderService builds renderer configuration and relays signer callbacks.
type RenderService struct {
	catalog *CatalogService
	signer  signer.Signer
	logger  *slog.Logger
}

// NewRenderService creates a new render service.
func NewRenderService(catalog *CatalogService, s signer.Signer, logger *slog.Logger) *RenderService {
	return &RenderService{
		catalog: catalog,
		signer:  s,
		logger:  logger,
	}
}

// ConfigFor returns the render configuration for an entry.
func (s *RenderService) ConfigFor(ctx context.Context, entryID string) (*EntryRenderConfig, error) {
	entry, err := s.catalog.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	return &EntryRenderConfig{
		Frame: entry,
		Render: RenderConfig{
			HomeframeURL:     entry.SourceURL,
			FrameActionProxy: frameProxyPath,
			FrameGetProxy:    frameProxyPath,
			Specification:    s.signer.Specification(),
			Signer:           s.signer.State(),
		},
	}, nil
}

// SignerState returns the configured signer's client-safe state.
func (s *RenderService) SignerState() signer.State {
	return s.signer.State()
}

// ReportUnauthorizedAction forwards an unsigned button press on an entry to the signer.
func (s *RenderService) ReportUnauthorizedAction(ctx context.Context, entryID string, buttonIndex int) error {
	entry, err := s.catalog.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	return s.signer.OnUnauthorizedAction(ctx, signer.UnauthorizedAction{
		EntryID:     entry.ID,
		FrameURL:    entry.SourceURL,
		ButtonIndex: buttonIndex,
	})
}

// Logout ends the signer session.
func (s *RenderService) Logout(ctx context.Context) error {
	return s.signer.Logout(ctx)
}
