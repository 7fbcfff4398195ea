package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryFilter_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		filter   EntryFilter
		expected EntryFilter
		mode     Mode
	}{
		{"zero value", EntryFilter{}, EntryFilter{}, ModeAll},
		{"reserved tag", EntryFilter{TagSlug: "all"}, EntryFilter{}, ModeAll},
		{"reserved tag padded", EntryFilter{TagSlug: "  all "}, EntryFilter{}, ModeAll},
		{"real tag", EntryFilter{TagSlug: "games"}, EntryFilter{TagSlug: "games"}, ModeTag},
		{"search only", EntryFilter{Search: "mint"}, EntryFilter{Search: "mint"}, ModeSearch},
		{"search wins over tag", EntryFilter{TagSlug: "games", Search: "mint"}, EntryFilter{Search: "mint"}, ModeSearch},
		{"blank search falls back to tag", EntryFilter{TagSlug: "games", Search: "   "}, EntryFilter{TagSlug: "games"}, ModeTag},
		{"limit kept", EntryFilter{Limit: 6}, EntryFilter{Limit: 6}, ModeAll},
		{"negative limit clamps", EntryFilter{Limit: -3}, EntryFilter{}, ModeAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Normalized())
			assert.Equal(t, tt.mode, tt.filter.Mode())
		})
	}
}
