package sqldb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/framearchive/framearchive/internal/domain"
	"github.com/framearchive/framearchive/internal/store"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// makeTestEntry creates a domain.Entry created `age` minutes before baseTime.
func makeTestEntry(id, name, creator string, age int) *domain.Entry {
	return &domain.Entry{
		ID:          id,
		Name:        name,
		CreatorName: creator,
		SourceURL:   "https://frames.example/" + id,
		CreatedAt:   baseTime.Add(-time.Duration(age) * time.Minute),
	}
}

func mustCreateEntry(t *testing.T, s *Store, e *domain.Entry) {
	t.Helper()
	if err := s.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("CreateEntry(%s): %v", e.ID, err)
	}
}

func entryIDs(entries []*domain.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCreateAndGetEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := makeTestEntry("frame-1", "Alpha", "alice", 0)
	e.CreatorProfileURL = "https://warpcast.com/alice"
	e.IconURL = "https://frames.example/icon.png"
	mustCreateEntry(t, s, e)

	got, err := s.GetEntry(ctx, "frame-1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}

	if got.Name != "Alpha" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alpha")
	}
	if got.CreatorProfileURL != e.CreatorProfileURL {
		t.Errorf("CreatorProfileURL: got %q, want %q", got.CreatorProfileURL, e.CreatorProfileURL)
	}
	if got.IconURL != e.IconURL {
		t.Errorf("IconURL: got %q, want %q", got.IconURL, e.IconURL)
	}
	if got.Description != "" {
		t.Errorf("Description: got %q, want empty", got.Description)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, e.CreatedAt)
	}
	assertReleased(t, s)
}

func TestCreateEntry_GeneratesIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	e := &domain.Entry{Name: "Generated", SourceURL: "https://frames.example/g"}
	mustCreateEntry(t, s, e)

	if e.ID == "" || e.ID[:6] != "frame-" {
		t.Errorf("ID: got %q, want frame- prefix", e.ID)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestCreateEntry_Duplicate(t *testing.T) {
	s := newTestStore(t)
	mustCreateEntry(t, s, makeTestEntry("frame-dup", "One", "a", 0))

	err := s.CreateEntry(context.Background(), makeTestEntry("frame-dup", "Two", "b", 1))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	assertReleased(t, s)
}

func TestCreateEntry_RequiresNameAndURL(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateEntry(context.Background(), &domain.Entry{Name: "No URL"})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEntry(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	assertReleased(t, s)
}

func TestListEntries_OrderNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-old", "Old", "a", 30))
	mustCreateEntry(t, s, makeTestEntry("frame-new", "New", "a", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-mid", "Mid", "a", 10))

	got, err := s.ListEntries(ctx, store.EntryFilter{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}

	want := []string{"frame-new", "frame-mid", "frame-old"}
	if !equalIDs(entryIDs(got), want) {
		t.Errorf("order: got %v, want %v", entryIDs(got), want)
	}
	assertReleased(t, s)
}

func TestListEntries_TieBreakByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-a", "A", "x", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-c", "C", "x", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-b", "B", "x", 0))

	want := []string{"frame-c", "frame-b", "frame-a"}
	for i := 0; i < 3; i++ {
		got, err := s.ListEntries(ctx, store.EntryFilter{})
		if err != nil {
			t.Fatalf("ListEntries: %v", err)
		}
		if !equalIDs(entryIDs(got), want) {
			t.Errorf("call %d: got %v, want %v", i, entryIDs(got), want)
		}
	}
}

func TestListEntries_Empty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.ListEntries(context.Background(), store.EntryFilter{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestListEntries_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-1", "Alpha Poll", "bob", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-2", "Beta", "ALPHAcreator", 1))
	mustCreateEntry(t, s, makeTestEntry("frame-3", "Gamma", "carol", 2))

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"matches name case-insensitively", "alpha", []string{"frame-1", "frame-2"}},
		{"matches creator", "carol", []string{"frame-3"}},
		{"trimmed", "  gamma  ", []string{"frame-3"}},
		{"no match", "zeta", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListEntries(ctx, store.EntryFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("ListEntries: %v", err)
			}
			if !equalIDs(entryIDs(got), tt.want) {
				t.Errorf("got %v, want %v", entryIDs(got), tt.want)
			}
		})
	}
	assertReleased(t, s)
}

func TestListEntries_SearchFoldsUnicode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-eglise", "Église Frame", "Ölaf", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-plain", "Plain", "zoë", 1))

	tests := []struct {
		search string
		want   []string
	}{
		{"église", []string{"frame-eglise"}},
		{"ÉGLISE", []string{"frame-eglise"}},
		{"ölaf", []string{"frame-eglise"}},
		{"ÖLAF", []string{"frame-eglise"}},
		{"ZOË", []string{"frame-plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := s.ListEntries(ctx, store.EntryFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("ListEntries: %v", err)
			}
			if !equalIDs(entryIDs(got), tt.want) {
				t.Errorf("got %v, want %v", entryIDs(got), tt.want)
			}
		})
	}
	assertReleased(t, s)
}

func TestBuildListQuery_LowerFunc(t *testing.T) {
	query, _ := buildListQuery(store.EntryFilter{Search: "x"}, unicodeLowerFunc)
	if !strings.Contains(query, "unicode_lower(e.name) LIKE unicode_lower(?)") {
		t.Errorf("query does not fold with %s: %s", unicodeLowerFunc, query)
	}
}

func TestListEntries_SearchEscapesWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-pct", "100% Pure", "a", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-plain", "1000 Pure", "a", 1))
	mustCreateEntry(t, s, makeTestEntry("frame-under", "snake_case", "a", 2))
	mustCreateEntry(t, s, makeTestEntry("frame-nounder", "snakeXcase", "a", 3))
	mustCreateEntry(t, s, makeTestEntry("frame-slash", `back\slash`, "a", 4))

	tests := []struct {
		search string
		want   []string
	}{
		{"100%", []string{"frame-pct"}},
		{"e_c", []string{"frame-under"}},
		{`k\s`, []string{"frame-slash"}},
		{"%", []string{"frame-pct"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := s.ListEntries(ctx, store.EntryFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("ListEntries: %v", err)
			}
			if !equalIDs(entryIDs(got), tt.want) {
				t.Errorf("got %v, want %v", entryIDs(got), tt.want)
			}
		})
	}
}

func TestListEntries_TagFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateEntry(t, s, makeTestEntry("frame-1", "Game One", "a", 0))
	mustCreateEntry(t, s, makeTestEntry("frame-2", "Poll", "a", 1))
	mustCreateEntry(t, s, makeTestEntry("frame-3", "Game Two", "a", 2))

	games := makeTestTag("tag-games", "Games", "games")
	mustCreateTag(t, s, games)
	mustAddTag(t, s, "frame-1", games.ID)
	mustAddTag(t, s, "frame-3", games.ID)

	tests := []struct {
		name   string
		filter store.EntryFilter
		want   []string
	}{
		{"tag", store.EntryFilter{TagSlug: "games"}, []string{"frame-1", "frame-3"}},
		{"unknown tag", store.EntryFilter{TagSlug: "nope"}, []string{}},
		{"reserved tag", store.EntryFilter{TagSlug: "all"}, []string{"frame-1", "frame-2", "frame-3"}},
		{"search wins over tag", store.EntryFilter{TagSlug: "games", Search: "poll"}, []string{"frame-2"}},
		{"limit", store.EntryFilter{Limit: 2}, []string{"frame-1", "frame-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListEntries(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListEntries: %v", err)
			}
			if !equalIDs(entryIDs(got), tt.want) {
				t.Errorf("got %v, want %v", entryIDs(got), tt.want)
			}
		})
	}
	assertReleased(t, s)
}

func TestListEntries_ErrorReleasesConnection(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.db.Exec("DROP TABLE entry_tags; DROP TABLE entries"); err != nil {
		t.Fatalf("drop tables: %v", err)
	}

	if _, err := s.ListEntries(context.Background(), store.EntryFilter{}); err == nil {
		t.Fatal("expected error after dropping entries table")
	}
	if _, err := s.GetEntry(context.Background(), "frame-1"); err == nil || errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected a non-not-found error, got %v", err)
	}
	assertReleased(t, s)
}

func TestBuildListQuery_Modes(t *testing.T) {
	_, args := buildListQuery(store.EntryFilter{}, "LOWER")
	if len(args) != 0 {
		t.Errorf("all: got %d args, want 0", len(args))
	}

	_, args = buildListQuery(store.EntryFilter{Search: "x", TagSlug: "games", Limit: 6}, "LOWER")
	if len(args) != 3 || args[0] != "%x%" || args[2] != 6 {
		t.Errorf("search: unexpected args %v", args)
	}

	_, args = buildListQuery(store.EntryFilter{TagSlug: "games"}, "LOWER")
	if len(args) != 1 || args[0] != "games" {
		t.Errorf("tag: unexpected args %v", args)
	}
}
