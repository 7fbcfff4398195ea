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

// entryColumns is the ordered list of columns selected in entry queries.
// Must match the scan order in scanEntry.
const entryColumns = `e.id, e.name, e.creator_name, e.creator_profile_url, e.source_url,
	e.icon_url, e.description, e.created_at`

// entryOrder is the single ordering for every entry listing. The id tie-break
// keeps repeated calls identical when timestamps collide.
const entryOrder = ` ORDER BY e.created_at DESC, e.id DESC`

// likeEscaper escapes LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scanEntry scans a sql.Row (or sql.Rows via its Scan method) into a domain.Entry.
func scanEntry(scanner interface{ Scan(dest ...any) error }) (*domain.Entry, error) {
	var e domain.Entry

	var (
		creatorProfileURL sql.NullString
		iconURL           sql.NullString
		description       sql.NullString
		createdAt         string
	)

	err := scanner.Scan(
		&e.ID,
		&e.Name,
		&e.CreatorName,
		&creatorProfileURL,
		&e.SourceURL,
		&iconURL,
		&description,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatorProfileURL = creatorProfileURL.String
	e.IconURL = iconURL.String
	e.Description = description.String

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", e.ID, err)
	}

	return &e, nil
}

// buildListQuery returns the SELECT for a filter along with its arguments,
// still using "?" placeholders. lower names the case-folding SQL function.
func buildListQuery(filter store.EntryFilter, lower string) (string, []any) {
	f := filter.Normalized()

	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT ` + entryColumns + ` FROM entries e`)

	switch f.Mode() {
	case store.ModeSearch:
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		b.WriteString(` WHERE ` + lower + `(e.name) LIKE ` + lower + `(?) ESCAPE '\'` +
			` OR ` + lower + `(e.creator_name) LIKE ` + lower + `(?) ESCAPE '\'`)
		args = append(args, pattern, pattern)
	case store.ModeTag:
		b.WriteString(` JOIN entry_tags et ON et.entry_id = e.id` +
			` JOIN tags t ON t.id = et.tag_id` +
			` WHERE t.slug = ?`)
		args = append(args, f.TagSlug)
	}

	b.WriteString(entryOrder)

	if f.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	return b.String(), args
}

// ListEntries returns entries matching the filter, newest first.
// An unknown tag slug yields an empty slice, not an error.
func (s *Store) ListEntries(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	query, args := buildListQuery(filter, s.lowerFunc())

	entries := []*domain.Entry{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, s.rebind(query), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// GetEntry retrieves an entry by its exact ID.
// Returns store.ErrEntryNotFound if no row matches.
func (s *Store) GetEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	var entry *domain.Entry
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			s.rebind(`SELECT `+entryColumns+` FROM entries e WHERE e.id = ?`), entryID)

		e, err := scanEntry(row)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", entryID, err)
	}
	return entry, nil
}

// CreateEntry inserts a new entry. A missing ID or CreatedAt is filled in
// and written back to e. Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateEntry(ctx context.Context, e *domain.Entry) error {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.SourceURL) == "" {
		return store.ErrInvalidInput.WithMessage("entry requires a name and url")
	}
	if e.ID == "" {
		entryID, err := id.NewEntryID()
		if err != nil {
			return err
		}
		e.ID = entryID
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, s.rebind(`
			INSERT INTO entries (
				id, name, creator_name, creator_profile_url, source_url,
				icon_url, description, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			e.ID,
			e.Name,
			e.CreatorName,
			nullString(e.CreatorProfileURL),
			e.SourceURL,
			nullString(e.IconURL),
			nullString(e.Description),
			formatTime(e.CreatedAt),
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithCause(err)
		}
		return fmt.Errorf("create entry %s: %w", e.ID, err)
	}

	s.logger.Debug("entry created", "entry_id", e.ID)
	return nil
}
