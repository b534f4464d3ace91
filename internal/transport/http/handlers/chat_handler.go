package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	chatsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/chat"
	matchessvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/matches"
	moderationsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/moderation"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

type ChatHandler struct {
	service *chatsvc.Service
}

func NewChatHandler(service *chatsvc.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Messages opens the conversation, seeding the greeting on first open.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	identity, matchID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	messages, err := h.service.Open(r.Context(), identity.UserID, matchID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	resp := dto.MessagesResponse{Items: make([]dto.MessageResponse, 0, len(messages))}
	for _, m := range messages {
		resp.Items = append(resp.Items, mapMessage(m))
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, matchID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	msg, err := h.service.Send(r.Context(), identity.UserID, matchID, req.Text, req.AudioURL, req.ImageURL)
	if err != nil {
		handleChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapMessage(msg))
}

// Analysis returns the stored compatibility note, generating it on the
// first request.
func (h *ChatHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	identity, matchID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	msg, err := h.service.Analyze(r.Context(), identity.UserID, matchID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapMessage(msg))
}

func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	identity, matchID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	suggestions, err := h.service.Suggestions(r.Context(), identity.UserID, matchID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	resp := dto.SuggestionsResponse{Suggestions: make([]dto.SuggestionResponse, 0, len(suggestions))}
	for _, s := range suggestions {
		resp.Suggestions = append(resp.Suggestions, dto.SuggestionResponse{Topic: s.Topic, Message: s.Message})
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ChatHandler) authorize(w http.ResponseWriter, r *http.Request) (authsvc.Identity, int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, 0, false
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return authsvc.Identity{}, 0, false
	}

	matchID, ok := matchIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return authsvc.Identity{}, 0, false
	}

	return identity, matchID, true
}

func handleChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatsvc.ErrValidation), errors.Is(err, chatsvc.ErrEmptyMessage):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid message")
	case errors.Is(err, chatsvc.ErrSuggestionsDisabled):
		writeForbidden(w, "SUGGESTIONS_DISABLED", "message suggestions are disabled in preferences")
	case errors.Is(err, matchessvc.ErrNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match does not exist")
	case errors.Is(err, matchessvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "match does not involve you")
	case errors.Is(err, moderationsvc.ErrTextRejected):
		writeBadRequest(w, "TEXT_REJECTED", "message was rejected by moderation")
	case errors.Is(err, moderationsvc.ErrUnavailable):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "MODERATION_UNAVAILABLE",
			Message: "moderation is temporarily unavailable, try again later",
		})
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process chat operation")
	}
}
