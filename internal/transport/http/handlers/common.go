package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func matchIDFromRequest(r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "matchID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func mapProfile(p model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:             p.UserID,
		DisplayName:        p.DisplayName,
		Age:                p.Age,
		City:               p.City,
		State:              p.State,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Tagline:            p.Tagline,
		Bio:                p.Bio,
		Interests:          p.Interests,
		PhotoURLs:          p.PhotoURLs,
		Gender:             string(p.Gender),
		Orientation:        string(p.Orientation),
		RelationshipGoal:   string(p.RelationshipGoal),
		HeightCM:           p.HeightCM,
		BodyType:           string(p.BodyType),
		Smoking:            string(p.Smoking),
		Drinking:           string(p.Drinking),
		Zodiac:             p.Zodiac,
		Religion:           p.Religion,
		Languages:          p.Languages,
		HasPets:            p.HasPets,
		Accessibility:      string(p.Accessibility),
		PubliclySearchable: p.PubliclySearchable,
		ShowLikeCount:      p.ShowLikeCount,
		LikeCount:          p.LikeCount,
		UpdatedAt:          p.UpdatedAt,
	}
}

func mapMessage(m model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		AudioURL:  m.AudioURL,
		ImageURL:  m.ImageURL,
		Type:      string(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

func mapPreferences(p model.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{
		AgeMin:        p.AgeMin,
		AgeMax:        p.AgeMax,
		HeightMinCM:   p.HeightMinCM,
		HeightMaxCM:   p.HeightMaxCM,
		MaxDistanceKM: p.MaxDistanceKM,
		SearchGender:  string(p.SearchGender),

		Goals:     p.Goals,
		BodyTypes: p.BodyTypes,
		Smoking:   p.Smoking,
		Drinking:  p.Drinking,
		Zodiacs:   p.Zodiacs,
		Religions: p.Religions,

		Pets:          string(p.Pets),
		Accessibility: string(p.Accessibility),

		State:     p.State,
		City:      p.City,
		NameQuery: p.NameQuery,

		EnableMessageSuggestions: p.EnableMessageSuggestions,
	}
}
