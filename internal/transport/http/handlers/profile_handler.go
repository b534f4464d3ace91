package handlers

import (
	"errors"
	"net/http"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	moderationsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/moderation"
	profilesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/profiles"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	view, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(view.Profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	saved, err := h.service.Save(r.Context(), model.Profile{
		UserID:             identity.UserID,
		DisplayName:        req.DisplayName,
		Age:                req.Age,
		City:               req.City,
		State:              req.State,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Tagline:            req.Tagline,
		Bio:                req.Bio,
		Interests:          req.Interests,
		Gender:             enums.Gender(req.Gender),
		Orientation:        enums.Orientation(req.Orientation),
		RelationshipGoal:   enums.RelationshipGoal(req.RelationshipGoal),
		HeightCM:           req.HeightCM,
		BodyType:           enums.BodyType(req.BodyType),
		Smoking:            enums.Smoking(req.Smoking),
		Drinking:           enums.Drinking(req.Drinking),
		Zodiac:             req.Zodiac,
		Religion:           req.Religion,
		Languages:          req.Languages,
		HasPets:            req.HasPets,
		Accessibility:      enums.Accessibility(req.Accessibility),
		PubliclySearchable: req.PubliclySearchable,
		ShowLikeCount:      req.ShowLikeCount,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(saved))
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "profile validation failed")
	case errors.Is(err, profilesvc.ErrNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile does not exist")
	case errors.Is(err, moderationsvc.ErrTextRejected):
		writeBadRequest(w, "TEXT_REJECTED", "profile text was rejected by moderation")
	case errors.Is(err, moderationsvc.ErrUnavailable):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "MODERATION_UNAVAILABLE",
			Message: "moderation is temporarily unavailable, try again later",
		})
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process profile")
	}
}
