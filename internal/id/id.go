// Package id generates the prefixed catalog identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each kind of catalog identifier.
const (
	PrefixEntry  = "frame"
	PrefixTag    = "tag"
	PrefixDirect = "direct"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "frame-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewEntryID returns an ID for a catalog entry.
func NewEntryID() (string, error) { return Generate(PrefixEntry) }

// NewTagID returns an ID for a tag.
func NewTagID() (string, error) { return Generate(PrefixTag) }

// NewDirectID returns the ID handed out for a directly registered frame URL.
func NewDirectID() (string, error) { return Generate(PrefixDirect) }
