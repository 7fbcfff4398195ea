package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/framearchive/framearchive/internal/domain"
	"github.com/framearchive/framearchive/internal/id"
	"github.com/framearchive/framearchive/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, slug, created_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for tag %s: %w", t.ID, err)
	}

	return &t, nil
}

// ListTags returns every tag with the reserved "all" tag first, then by name.
// The reserved tag is included; dropping it is the caller's decision.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, s.rebind(`
			SELECT `+tagColumns+` FROM tags
			ORDER BY CASE WHEN slug = ? THEN 0 ELSE 1 END, name ASC, slug ASC`),
			domain.ReservedTagSlug,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTag(rows)
			if err != nil {
				return err
			}
			tags = append(tags, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// CreateTag inserts a new tag. A missing ID or CreatedAt is filled in.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	if strings.TrimSpace(t.Slug) == "" {
		return store.ErrInvalidInput.WithMessage("tag requires a slug")
	}
	if t.ID == "" {
		tagID, err := id.NewTagID()
		if err != nil {
			return err
		}
		t.ID = tagID
	}
	if t.Name == "" {
		t.Name = t.Slug
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, s.rebind(`
			INSERT INTO tags (id, name, slug, created_at)
			VALUES (?, ?, ?, ?)`),
			t.ID,
			t.Name,
			t.Slug,
			formatTime(t.CreatedAt),
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("create tag %s: %w", t.Slug, err)
	}
	return nil
}

// AddTagToEntry stores one entry-tag association. A zero CreatedAt is filled
// in. Adding an existing pair is a no-op. Returns store.ErrTagNotFound for an
// unknown tag and store.ErrReservedTag for the "all" pseudo-tag.
func (s *Store) AddTagToEntry(ctx context.Context, et *domain.EntryTag) error {
	if et.EntryID == "" || et.TagID == "" {
		return store.ErrInvalidInput.WithMessage("entry tag requires an entry and a tag")
	}
	if et.CreatedAt.IsZero() {
		et.CreatedAt = time.Now()
	}

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var slug string
		err := conn.QueryRowContext(ctx,
			s.rebind(`SELECT slug FROM tags WHERE id = ?`), et.TagID).Scan(&slug)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrTagNotFound
		}
		if err != nil {
			return err
		}
		if domain.IsReservedTagSlug(slug) {
			return store.ErrReservedTag
		}

		_, err = conn.ExecContext(ctx, s.rebind(`
			INSERT INTO entry_tags (entry_id, tag_id, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT (entry_id, tag_id) DO NOTHING`),
			et.EntryID,
			et.TagID,
			formatTime(et.CreatedAt),
		)
		return err
	})
	if err != nil {
		var storeErr *store.Error
		if errors.As(err, &storeErr) {
			return err
		}
		return fmt.Errorf("add tag %s to entry %s: %w", et.TagID, et.EntryID, err)
	}
	return nil
}
