// Package store defines the persistence interface for the frame catalog.
package store

import (
	"context"

	"github.com/framearchive/framearchive/internal/domain"
)

// Catalog defines every persistence operation the services rely on.
// Reads are the only thing the HTTP surface performs; the create methods
// exist for out-of-band ingestion (the seeder and tests).
type Catalog interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Entries
	ListEntries(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	CreateEntry(ctx context.Context, entry *domain.Entry) error

	// Tags
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	CreateTag(ctx context.Context, tag *domain.Tag) error
	AddTagToEntry(ctx context.Context, et *domain.EntryTag) error
}
