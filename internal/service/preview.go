package service

import (
	"bytes"
	"context"
	"log/slog"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/preview"
	"github.com/framearchive/framearchive/internal/store"
)

const msgPreviewFailed = "Error generating image"

// PreviewService renders the catalog preview card.
type PreviewService struct {
	catalog *CatalogService
	logger  *slog.Logger
}

// NewPreviewService creates a new preview service.
func NewPreviewService(catalog *CatalogService, logger *slog.Logger) *PreviewService {
	return &PreviewService{
		catalog: catalog,
		logger:  logger,
	}
}

// Render returns a PNG featuring the newest entries, or the newest matches when
// search is set.
func (s *PreviewService) Render(ctx context.Context, search string) ([]byte, error) {
	entries, err := s.catalog.ListEntries(ctx, store.EntryFilter{
		Search: search,
		Limit:  preview.MaxFeatured,
	})
	if err != nil {
		return nil, domainerrors.Dependency(msgPreviewFailed, err)
	}

	card := preview.Card{Featured: make([]preview.Featured, 0, len(entries))}
	for _, e := range entries {
		card.Featured = append(card.Featured, preview.Featured{Name: e.Name, Creator: e.CreatorName})
	}

	var buf bytes.Buffer
	if err := preview.Render(&buf, card); err != nil {
		s.logger.ErrorContext(ctx, "render preview failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, msgPreviewFailed)
	}
	return buf.Bytes(), nil
}
