package dto

type PreferencesResponse struct {
	AgeMin        int    `json:"age_min"`
	AgeMax        int    `json:"age_max"`
	HeightMinCM   int    `json:"height_min_cm"`
	HeightMaxCM   int    `json:"height_max_cm"`
	MaxDistanceKM int    `json:"max_distance_km"`
	SearchGender  string `json:"search_gender"`

	Goals     []string `json:"goals"`
	BodyTypes []string `json:"body_types"`
	Smoking   []string `json:"smoking"`
	Drinking  []string `json:"drinking"`
	Zodiacs   []string `json:"zodiacs"`
	Religions []string `json:"religions"`

	Pets          string `json:"pets"`
	Accessibility string `json:"accessibility"`

	State     string `json:"state"`
	City      string `json:"city"`
	NameQuery string `json:"name_query"`

	EnableMessageSuggestions bool `json:"enable_message_suggestions"`
}

type UpdatePreferencesRequest struct {
	AgeMin        int    `json:"age_min"`
	AgeMax        int    `json:"age_max"`
	HeightMinCM   int    `json:"height_min_cm"`
	HeightMaxCM   int    `json:"height_max_cm"`
	MaxDistanceKM int    `json:"max_distance_km"`
	SearchGender  string `json:"search_gender"`

	Goals     []string `json:"goals"`
	BodyTypes []string `json:"body_types"`
	Smoking   []string `json:"smoking"`
	Drinking  []string `json:"drinking"`
	Zodiacs   []string `json:"zodiacs"`
	Religions []string `json:"religions"`

	Pets          string `json:"pets"`
	Accessibility string `json:"accessibility"`

	State     string `json:"state"`
	City      string `json:"city"`
	NameQuery string `json:"name_query"`

	EnableMessageSuggestions bool `json:"enable_message_suggestions"`
}
