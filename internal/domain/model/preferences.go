package model

import (
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
)

// Preferences is the per-user discovery filter, attached 1:1 to a profile.
// Multi-select lists are never empty: clearing every concrete option
// collapses the list back to ["indifferent"].
type Preferences struct {
	UserID        int64 `json:"user_id"`
	AgeMin        int   `json:"age_min"`
	AgeMax        int   `json:"age_max"`
	HeightMinCM   int   `json:"height_min_cm"`
	HeightMaxCM   int   `json:"height_max_cm"`
	MaxDistanceKM int   `json:"max_distance_km"`

	// SearchGender is the active search filter, independent of the
	// profile's orientation.
	SearchGender enums.Orientation `json:"search_gender"`

	Goals     []string `json:"goals"`
	BodyTypes []string `json:"body_types"`
	Smoking   []string `json:"smoking"`
	Drinking  []string `json:"drinking"`
	Zodiacs   []string `json:"zodiacs"`
	Religions []string `json:"religions"`

	Pets          enums.TriState `json:"pets"`
	Accessibility enums.TriState `json:"accessibility"`

	// State/City override distance filtering entirely when set.
	State string `json:"state"`
	City  string `json:"city"`

	// NameQuery matches only publicly searchable profiles.
	NameQuery string `json:"name_query"`

	EnableMessageSuggestions bool `json:"enable_message_suggestions"`
}
