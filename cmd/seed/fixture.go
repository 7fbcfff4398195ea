package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/framearchive/framearchive/internal/domain"
	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/util"
	"github.com/framearchive/framearchive/internal/validation"
)

// Fixture is the YAML document the seed tool loads.
type Fixture struct {
	Tags    []FixtureTag   `yaml:"tags"`
	Entries []FixtureEntry `yaml:"entries"`
}

// FixtureTag declares one tag. Name defaults to a title-cased slug.
type FixtureTag struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// FixtureEntry declares one catalog entry and the tag slugs it carries.
// Leave ID empty to have one generated; such entries are inserted on every run.
type FixtureEntry struct {
	ID                string    `yaml:"id"`
	Name              string    `yaml:"name" validate:"required"`
	CreatorName       string    `yaml:"creator_name"`
	CreatorProfileURL string    `yaml:"creator_profile_url" validate:"omitempty,http_url"`
	URL               string    `yaml:"url" validate:"required,http_url"`
	IconURL           string    `yaml:"icon_url" validate:"omitempty,http_url"`
	Description       string    `yaml:"description"`
	CreatedAt         time.Time `yaml:"created_at"`
	Tags              []string  `yaml:"tags"`
}

// ParseFixture decodes a fixture and normalizes its tag slugs.
// Unknown keys are rejected so typos in hand-written fixtures surface early.
func ParseFixture(r io.Reader, v *validation.Validator) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	declared := make(map[string]bool, len(f.Tags))
	for i := range f.Tags {
		t := &f.Tags[i]
		t.Slug = util.NormalizeTagSlug(t.Slug)
		if t.Slug == "" {
			return nil, fmt.Errorf("tag %d: slug is empty after normalization", i)
		}
		if domain.IsReservedTagSlug(t.Slug) {
			return nil, fmt.Errorf("tag %d: %q is reserved", i, t.Slug)
		}
		if declared[t.Slug] {
			return nil, fmt.Errorf("tag %d: duplicate slug %q", i, t.Slug)
		}
		declared[t.Slug] = true
		if strings.TrimSpace(t.Name) == "" {
			t.Name = util.TagNameFromSlug(t.Slug)
		}
	}

	for i := range f.Entries {
		e := &f.Entries[i]
		if err := v.Validate(e); err != nil {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return nil, fmt.Errorf("entry %d: %s %v", i, domainErr.Message, domainErr.Details)
			}
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		for j, slug := range e.Tags {
			slug = util.NormalizeTagSlug(slug)
			if !declared[slug] {
				return nil, fmt.Errorf("entry %q: tag %q is not declared", e.Name, e.Tags[j])
			}
			e.Tags[j] = slug
		}
	}

	return &f, nil
}

// Entry converts the fixture row to a domain entry.
func (e FixtureEntry) Entry() *domain.Entry {
	return &domain.Entry{
		ID:                e.ID,
		Name:              e.Name,
		CreatorName:       e.CreatorName,
		CreatorProfileURL: e.CreatorProfileURL,
		SourceURL:         e.URL,
		IconURL:           e.IconURL,
		Description:       e.Description,
		CreatedAt:         e.CreatedAt,
	}
}

func tagFromFixture(t FixtureTag) *domain.Tag {
	return &domain.Tag{Name: t.Name, Slug: t.Slug}
}

// entryTags builds the association rows for an inserted entry. Slugs without a
// known tag id are reported so a partially seeded catalog is never silent.
func entryTags(e *domain.Entry, slugs []string, tagIDs map[string]string) ([]*domain.EntryTag, error) {
	rows := make([]*domain.EntryTag, 0, len(slugs))
	for _, slug := range slugs {
		tagID, ok := tagIDs[slug]
		if !ok {
			return nil, fmt.Errorf("entry %s: tag %q has no id", e.ID, slug)
		}
		rows = append(rows, &domain.EntryTag{EntryID: e.ID, TagID: tagID, CreatedAt: e.CreatedAt})
	}
	return rows, nil
}
