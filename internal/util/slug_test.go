package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "GAMES", "games"},
		{"spaces to dashes", "mini games", "mini-games"},
		{"underscores to dashes", "defi_tools", "defi-tools"},
		{"already normalized", "mini-games", "mini-games"},
		{"reserved stays reserved", " All ", "all"},

		// Whitespace handling
		{"trim whitespace", "  games  ", "games"},
		{"multiple spaces", "mini   games", "mini-games"},
		{"tabs and spaces", "mini\t games", "mini-games"},

		// Special characters
		{"emoji removal", "🎮 Games!", "games"},
		{"slash to dash", "art/music", "art-music"},
		{"apostrophe removal", "creator's picks", "creators-picks"},

		// Dash handling
		{"multiple dashes", "mini--games", "mini-games"},
		{"mixed dashes", "--mini--games--", "mini-games"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},
		{"mixed case with numbers", "Top 10 Frames", "top-10-frames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTagNameFromSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"mini-games", "Mini Games"},
		{"all", "All"},
		{"defi", "Defi"},
		{"Top 10 Frames", "Top 10 Frames"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TagNameFromSlug(tt.input); got != tt.expected {
				t.Errorf("TagNameFromSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
