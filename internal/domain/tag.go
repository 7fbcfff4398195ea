package domain

import "time"

// ReservedTagSlug is the pseudo-tag meaning "no filter". It may exist as a row
// so it sorts first, but it never labels entries and is never listed as a tag.
const ReservedTagSlug = "all"

// Tag is a category entries can be filtered by.
// Slug is the unique, URL-safe filter key; Name is for display.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// IsReserved reports whether the tag is the "no filter" pseudo-tag.
func (t *Tag) IsReserved() bool {
	return IsReservedTagSlug(t.Slug)
}

// IsReservedTagSlug reports whether slug selects no tag filter.
// An empty slug is treated the same as the reserved one.
func IsReservedTagSlug(slug string) bool {
	return slug == "" || slug == ReservedTagSlug
}

// EntryTag is one row of the many-to-many association between entries and tags.
// It has no identity of its own beyond the pair.
type EntryTag struct {
	EntryID   string    `json:"entry_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
