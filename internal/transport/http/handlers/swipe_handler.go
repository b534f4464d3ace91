package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	swipesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/swipes"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 || strings.TrimSpace(req.Action) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and action are required")
		return
	}

	action := enums.SwipeAction(strings.ToUpper(strings.TrimSpace(req.Action)))
	if action == enums.SwipeActionSuperLike && strings.TrimSpace(req.RewardToken) == "" {
		writeBadRequest(w, "REWARD_REQUIRED", "superlike requires a reward token")
		return
	}

	result, err := h.service.Decide(r.Context(), identity.UserID, req.TargetID, action)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrUnsupportedAction):
			writeBadRequest(w, "VALIDATION_ERROR", "unsupported action")
		case errors.Is(err, swipesvc.ErrBlocked):
			writeForbidden(w, "BLOCKED", "interaction with this user is blocked")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		}
		return
	}

	resp := dto.SwipeResponse{
		OK:           true,
		Recorded:     result.Recorded,
		MatchCreated: result.MatchCreated,
	}
	if result.MatchCreated {
		resp.Match = &dto.MatchResponse{
			ID:        result.Match.ID,
			UserAID:   result.Match.UserAID,
			UserBID:   result.Match.UserBID,
			CreatedAt: result.Match.CreatedAt,
		}
		if result.MatchedProfile != nil {
			profile := mapProfile(*result.MatchedProfile)
			resp.MatchedProfile = &profile
		}
	}

	httperrors.Write(w, http.StatusOK, resp)
}
