package store

import (
	"strings"

	"github.com/framearchive/framearchive/internal/domain"
)

// EntryFilter selects which entries ListEntries returns.
//
// Search and TagSlug are alternatives: when Search is non-empty after trimming
// it wins and TagSlug is ignored. An empty TagSlug or the reserved "all" slug
// means no tag filter. Limit 0 means unbounded.
type EntryFilter struct {
	TagSlug string
	Search  string
	Limit   int
}

// Mode identifies which branch of the filter applies.
type Mode int

// Filter modes in precedence order.
const (
	ModeAll Mode = iota
	ModeSearch
	ModeTag
)

// Normalized returns a copy with whitespace trimmed and the precedence rule applied,
// so at most one of Search and TagSlug is set.
func (f EntryFilter) Normalized() EntryFilter {
	out := EntryFilter{Limit: f.Limit}
	if out.Limit < 0 {
		out.Limit = 0
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		out.Search = search
		return out
	}

	if slug := strings.TrimSpace(f.TagSlug); !domain.IsReservedTagSlug(slug) {
		out.TagSlug = slug
	}
	return out
}

// Mode reports which branch a normalized filter takes.
func (f EntryFilter) Mode() Mode {
	n := f.Normalized()
	switch {
	case n.Search != "":
		return ModeSearch
	case n.TagSlug != "":
		return ModeTag
	default:
		return ModeAll
	}
}
