package entity

import "time"

// MaxRecentSearches caps the recent-search history per owner.
const MaxRecentSearches = 10

// MaxDisplayNameLength caps Profile.DisplayName in runes.
const MaxDisplayNameLength = 64

// Profile is the user's display identity shown in the dashboard header.
type Profile struct {
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
