// Package domain holds the catalog entities shared by the store, services, and API.
package domain

import "time"

// Entry is one archived interactive card ("frame") in the catalog.
// ID and CreatedAt are set once at insertion and never change.
type Entry struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CreatorName       string    `json:"creator_name"`
	CreatorProfileURL string    `json:"creator_profile_url,omitempty"`
	SourceURL         string    `json:"url"`
	IconURL           string    `json:"icon_url,omitempty"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
