package dto

import "time"

type ProfileResponse struct {
	UserID             int64    `json:"user_id"`
	DisplayName        string   `json:"display_name"`
	Age                int      `json:"age"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	Tagline            string   `json:"tagline"`
	Bio                string   `json:"bio"`
	Interests          []string `json:"interests"`
	PhotoURLs          []string `json:"photo_urls"`
	Gender             string   `json:"gender"`
	Orientation        string   `json:"orientation"`
	RelationshipGoal   string   `json:"relationship_goal"`
	HeightCM           int      `json:"height_cm"`
	BodyType           string   `json:"body_type"`
	Smoking            string   `json:"smoking"`
	Drinking           string   `json:"drinking"`
	Zodiac             string   `json:"zodiac,omitempty"`
	Religion           string   `json:"religion,omitempty"`
	Languages          []string `json:"languages"`
	HasPets            bool     `json:"has_pets"`
	Accessibility      string   `json:"accessibility"`
	PubliclySearchable bool     `json:"publicly_searchable"`
	ShowLikeCount      bool     `json:"show_like_count"`
	LikeCount          int      `json:"like_count,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName        string   `json:"display_name"`
	Age                int      `json:"age"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Tagline            string   `json:"tagline"`
	Bio                string   `json:"bio"`
	Interests          []string `json:"interests"`
	Gender             string   `json:"gender"`
	Orientation        string   `json:"orientation"`
	RelationshipGoal   string   `json:"relationship_goal"`
	HeightCM           int      `json:"height_cm"`
	BodyType           string   `json:"body_type"`
	Smoking            string   `json:"smoking"`
	Drinking           string   `json:"drinking"`
	Zodiac             string   `json:"zodiac"`
	Religion           string   `json:"religion"`
	Languages          []string `json:"languages"`
	HasPets            bool     `json:"has_pets"`
	Accessibility      string   `json:"accessibility"`
	PubliclySearchable bool     `json:"publicly_searchable"`
	ShowLikeCount      bool     `json:"show_like_count"`
}
