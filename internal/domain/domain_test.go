package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReservedTagSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"", true},
		{"all", true},
		{"All", false},
		{"games", false},
		{"all-time", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReservedTagSlug(tt.slug))
		})
	}
}

func TestTag_IsReserved(t *testing.T) {
	assert.True(t, (&Tag{Slug: ReservedTagSlug, Name: "All"}).IsReserved())
	assert.False(t, (&Tag{Slug: "defi", Name: "DeFi"}).IsReserved())
}
