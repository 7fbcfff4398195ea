package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/framearchive/framearchive/internal/domain"
	"github.com/framearchive/framearchive/internal/store"
)

// makeTestTag creates a domain.Tag with sensible defaults for testing.
func makeTestTag(id, name, slug string) *domain.Tag {
	return &domain.Tag{
		ID:        id,
		Name:      name,
		Slug:      slug,
		CreatedAt: baseTime,
	}
}

func mustCreateTag(t *testing.T, s *Store, tag *domain.Tag) {
	t.Helper()
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag(%s): %v", tag.Slug, err)
	}
}

func mustAddTag(t *testing.T, s *Store, entryID, tagID string) {
	t.Helper()
	if err := s.AddTagToEntry(context.Background(), &domain.EntryTag{EntryID: entryID, TagID: tagID}); err != nil {
		t.Fatalf("AddTagToEntry(%s, %s): %v", entryID, tagID, err)
	}
}

func TestListTags_ReservedFirstThenName(t *testing.T) {
	s := newTestStore(t)

	mustCreateTag(t, s, makeTestTag("tag-z", "Zines", "zines"))
	mustCreateTag(t, s, makeTestTag("tag-all", "All", "all"))
	mustCreateTag(t, s, makeTestTag("tag-a", "Art", "art"))
	mustCreateTag(t, s, makeTestTag("tag-g", "Games", "games"))

	tags, err := s.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}

	want := []string{"all", "art", "games", "zines"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tags))
	}
	for i, tag := range tags {
		if tag.Slug != want[i] {
			t.Errorf("tags[%d]: got %q, want %q", i, tag.Slug, want[i])
		}
	}
	assertReleased(t, s)
}

func TestListTags_Empty(t *testing.T) {
	s := newTestStore(t)

	tags, err := s.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", tags)
	}
}

func TestCreateTag_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	mustCreateTag(t, s, makeTestTag("tag-1", "Games", "games"))

	err := s.CreateTag(context.Background(), makeTestTag("tag-2", "More Games", "games"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateTag_Defaults(t *testing.T) {
	s := newTestStore(t)

	tag := &domain.Tag{Slug: "defi"}
	mustCreateTag(t, s, tag)

	if tag.ID == "" || tag.ID[:4] != "tag-" {
		t.Errorf("ID: got %q, want tag- prefix", tag.ID)
	}
	if tag.Name != "defi" {
		t.Errorf("Name: got %q, want slug fallback", tag.Name)
	}
}

func TestAddTagToEntry_Idempotent(t *testing.T) {
	s := newTestStore(t)
	mustCreateEntry(t, s, makeTestEntry("frame-1", "One", "a", 0))
	mustCreateTag(t, s, makeTestTag("tag-g", "Games", "games"))

	mustAddTag(t, s, "frame-1", "tag-g")
	mustAddTag(t, s, "frame-1", "tag-g")

	got, err := s.ListEntries(context.Background(), store.EntryFilter{TagSlug: "games"})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry, got %d", len(got))
	}
}

func TestAddTagToEntry_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateEntry(t, s, makeTestEntry("frame-1", "One", "a", 0))
	mustCreateTag(t, s, makeTestTag("tag-all", "All", "all"))

	if err := s.AddTagToEntry(ctx, &domain.EntryTag{EntryID: "frame-1", TagID: "tag-missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown tag: expected ErrNotFound, got %v", err)
	}
	if err := s.AddTagToEntry(ctx, &domain.EntryTag{EntryID: "frame-1", TagID: "tag-all"}); !errors.Is(err, store.ErrReservedTag) {
		t.Errorf("reserved tag: expected ErrReservedTag, got %v", err)
	}
	if err := s.AddTagToEntry(ctx, &domain.EntryTag{TagID: "tag-all"}); !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("missing entry: expected ErrInvalidInput, got %v", err)
	}
	assertReleased(t, s)
}

func TestAddTagToEntry_KeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateEntry(t, s, makeTestEntry("frame-1", "One", "a", 0))
	mustCreateTag(t, s, makeTestTag("tag-g", "Games", "games"))

	et := &domain.EntryTag{EntryID: "frame-1", TagID: "tag-g", CreatedAt: baseTime}
	if err := s.AddTagToEntry(ctx, et); err != nil {
		t.Fatalf("AddTagToEntry: %v", err)
	}

	var createdAt string
	if err := s.db.QueryRow(`SELECT created_at FROM entry_tags WHERE entry_id = ? AND tag_id = ?`,
		"frame-1", "tag-g").Scan(&createdAt); err != nil {
		t.Fatalf("query entry_tags: %v", err)
	}
	if createdAt != formatTime(baseTime) {
		t.Errorf("created_at: got %s, want %s", createdAt, formatTime(baseTime))
	}

	defaulted := &domain.EntryTag{EntryID: "frame-1", TagID: "tag-g"}
	if err := s.AddTagToEntry(ctx, defaulted); err != nil {
		t.Fatalf("AddTagToEntry: %v", err)
	}
	if defaulted.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled in")
	}
}

func TestEntryTags_CascadeOnEntryDelete(t *testing.T) {
	s := newTestStore(t)
	mustCreateEntry(t, s, makeTestEntry("frame-1", "One", "a", 0))
	mustCreateTag(t, s, makeTestTag("tag-g", "Games", "games"))
	mustAddTag(t, s, "frame-1", "tag-g")

	if _, err := s.db.Exec("DELETE FROM entries WHERE id = ?", "frame-1"); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entry_tags").Scan(&count); err != nil {
		t.Fatalf("count entry_tags: %v", err)
	}
	if count != 0 {
		t.Errorf("expected cascade delete, %d rows remain", count)
	}
}
