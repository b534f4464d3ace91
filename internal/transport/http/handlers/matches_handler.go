package handlers

import (
	"errors"
	"net/http"
	"strconv"

	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	matchessvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/matches"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

const defaultMatchesLimit = 100

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	limit := defaultMatchesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= defaultMatchesLimit {
			limit = parsed
		}
	}

	items, err := h.service.List(r.Context(), identity.UserID, limit)
	if err != nil {
		handleMatchesError(w, err)
		return
	}

	resp := dto.MatchesResponse{Items: make([]dto.MatchItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.MatchItemResponse{
			ID:          item.Match.ID,
			Counterpart: mapProfile(item.Counterpart),
			CreatedAt:   item.Match.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *MatchesHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.UnmatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.MatchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "match_id is required")
		return
	}

	if err := h.service.Unmatch(r.Context(), identity.UserID, req.MatchID); err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *MatchesHandler) Block(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	if err := h.service.Block(r.Context(), identity.UserID, req.TargetID, req.Reason); err != nil {
		handleMatchesError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleMatchesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
	case errors.Is(err, matchessvc.ErrNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match does not exist")
	case errors.Is(err, matchessvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "match does not involve you")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process match operation")
	}
}
