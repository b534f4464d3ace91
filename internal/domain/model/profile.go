package model

import (
	"time"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
)

type Profile struct {
	UserID             int64                  `json:"user_id"`
	DisplayName        string                 `json:"display_name"`
	Age                int                    `json:"age"`
	City               string                 `json:"city"`
	State              string                 `json:"state"`
	Latitude           *float64               `json:"latitude,omitempty"`
	Longitude          *float64               `json:"longitude,omitempty"`
	Tagline            string                 `json:"tagline"`
	Bio                string                 `json:"bio"`
	Interests          []string               `json:"interests"`
	PhotoURLs          []string               `json:"photo_urls"`
	Gender             enums.Gender           `json:"gender"`
	Orientation        enums.Orientation      `json:"orientation"`
	RelationshipGoal   enums.RelationshipGoal `json:"relationship_goal"`
	HeightCM           int                    `json:"height_cm"`
	BodyType           enums.BodyType         `json:"body_type"`
	Smoking            enums.Smoking          `json:"smoking"`
	Drinking           enums.Drinking         `json:"drinking"`
	Zodiac             string                 `json:"zodiac"`
	Religion           string                 `json:"religion"`
	Languages          []string               `json:"languages"`
	HasPets            bool                   `json:"has_pets"`
	Accessibility      enums.Accessibility    `json:"accessibility"`
	PubliclySearchable bool                   `json:"publicly_searchable"`
	ShowLikeCount      bool                   `json:"show_like_count"`
	LikeCount          int                    `json:"like_count"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// HasCoordinates reports whether the profile carries a usable location.
// Profiles without coordinates get an unbounded distance in discovery.
func (p Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
