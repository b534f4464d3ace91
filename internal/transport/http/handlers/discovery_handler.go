package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

type DiscoveryHandler struct {
	service *discoverysvc.Service
}

func NewDiscoveryHandler(service *discoverysvc.Service) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// Next serves the top card of the viewer's ranked session.
func (h *DiscoveryHandler) Next(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	card, err := h.service.Next(r.Context(), identity.UserID)
	if err != nil {
		handleDiscoveryError(w, err)
		return
	}

	resp := dto.DiscoveryCardResponse{
		Profile:            mapProfile(card.Profile),
		CompatibilityScore: card.Score,
	}
	if km, ok := discoverysvc.DistanceForDisplay(card.DistanceKM); ok {
		resp.DistanceKM = &km
	}

	httperrors.Write(w, http.StatusOK, resp)
}

// Reset discards the viewer's session queue and seen set.
func (h *DiscoveryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	if err := h.service.Reset(r.Context(), identity.UserID); err != nil {
		handleDiscoveryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleDiscoveryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, discoverysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid discovery request")
	case errors.Is(err, discoverysvc.ErrProfileRequired):
		writeConflict(w, "PROFILE_REQUIRED", "complete your profile before browsing")
	case errors.Is(err, discoverysvc.ErrSessionEmpty):
		writeNotFound(w, "NO_MORE_CANDIDATES", "no candidates match your filters right now")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to load discovery feed")
	}
}
