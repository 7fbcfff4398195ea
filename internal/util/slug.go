// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// NormalizeTagSlug converts user input to a canonical tag slug.
// The slug is the tag's filter key in query strings.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces, underscores, and slashes with dashes
//  3. Remove non-alphanumeric characters (except dashes)
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Mini Games"    → "mini-games"
//	"DeFi_Tools"    → "defi-tools"
//	"🎮 Games!"     → "games"
//	"--leading--"   → "leading"
func NormalizeTagSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TagNameFromSlug derives a display name for a slug: "mini-games" → "Mini Games".
func TagNameFromSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(NormalizeTagSlug(slug), "-", " "))
	// Casers are stateful; one per call keeps this safe for concurrent use.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
