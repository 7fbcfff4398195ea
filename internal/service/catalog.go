package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/framearchive/framearchive/internal/domain"
	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/store"
)

// Client-facing messages for catalog failures.
const (
	msgListFailed = "Failed to fetch frames"
	msgGetFailed  = "Failed to fetch frame"
	msgNotFound   = "Frame not found"
	msgTagsFailed = "Failed to fetch tags"
)

// CatalogService serves read-only queries over the frame catalog.
type CatalogService struct {
	store  store.Catalog
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog store.Catalog, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  catalog,
		logger: logger,
	}
}

// ListEntries returns entries newest first. A non-empty search wins over the
// tag; the reserved "all" tag and an empty tag mean no filter.
func (s *CatalogService) ListEntries(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	filter = filter.Normalized()

	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "list entries failed",
			"tag", filter.TagSlug,
			"search", filter.Search,
			"limit", filter.Limit,
			"error", err,
		)
		return nil, domainerrors.Dependency(msgListFailed, err)
	}
	return entries, nil
}

// GetEntry returns the entry with exactly this id. A missing entry is a
// not-found error, distinct from a datastore failure.
func (s *CatalogService) GetEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound(msgNotFound)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "get entry failed", "entry_id", entryID, "error", err)
		return nil, domainerrors.Dependency(msgGetFailed, err)
	}
	return entry, nil
}

// ListTags returns every real tag ordered by name. The reserved "all" tag is
// removed here so no caller has to.
func (s *CatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list tags failed", "error", err)
		return nil, domainerrors.Dependency(msgTagsFailed, err)
	}

	out := make([]*domain.Tag, 0, len(tags))
	for _, t := range tags {
		if t.IsReserved() {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Ping checks the datastore.
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
