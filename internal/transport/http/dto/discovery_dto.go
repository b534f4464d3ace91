package dto

type DiscoveryCardResponse struct {
	Profile            ProfileResponse `json:"profile"`
	CompatibilityScore int             `json:"compatibility_score"`

	// DistanceKM is omitted when either side has no coordinates.
	DistanceKM *int `json:"distance_km,omitempty"`
}
