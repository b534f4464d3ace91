package handlers

import (
	"errors"
	"net/http"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

type PreferencesHandler struct {
	service *discoverysvc.Service
}

func NewPreferencesHandler(service *discoverysvc.Service) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PREFERENCES_SERVICE_UNAVAILABLE", "preferences service is unavailable")
		return
	}

	prefs, err := h.service.Preferences(r.Context(), identity.UserID)
	if err != nil {
		handlePreferencesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapPreferences(prefs))
}

// Update replaces the viewer's filter and invalidates the active
// discovery session.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PREFERENCES_SERVICE_UNAVAILABLE", "preferences service is unavailable")
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	updated, err := h.service.UpdatePreferences(r.Context(), model.Preferences{
		UserID:        identity.UserID,
		AgeMin:        req.AgeMin,
		AgeMax:        req.AgeMax,
		HeightMinCM:   req.HeightMinCM,
		HeightMaxCM:   req.HeightMaxCM,
		MaxDistanceKM: req.MaxDistanceKM,
		SearchGender:  enums.Orientation(req.SearchGender),

		Goals:     req.Goals,
		BodyTypes: req.BodyTypes,
		Smoking:   req.Smoking,
		Drinking:  req.Drinking,
		Zodiacs:   req.Zodiacs,
		Religions: req.Religions,

		Pets:          enums.TriState(req.Pets),
		Accessibility: enums.TriState(req.Accessibility),

		State:     req.State,
		City:      req.City,
		NameQuery: req.NameQuery,

		EnableMessageSuggestions: req.EnableMessageSuggestions,
	})
	if err != nil {
		handlePreferencesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapPreferences(updated))
}

func handlePreferencesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, discoverysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid preferences")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process preferences")
	}
}
