package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	mediasvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/media"
	moderationsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/moderation"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/dto"
	httperrors "github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/errors"
)

const maxPhotoUploadSize = 20 << 20 // 20 MiB

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) PhotoUpload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadSize)
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file is required")
		return
	}
	defer file.Close()

	if header == nil || header.Size <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	photo, err := h.service.UploadPhoto(r.Context(), identity.UserID, header.Filename, contentType, file, header.Size)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MediaPhotoResponse{
		ID:       photo.ID,
		Position: photo.Position,
		URL:      photo.URL,
	})
}

func (h *MediaHandler) PhotosList(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	photos, err := h.service.ListPhotos(r.Context(), identity.UserID)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	items := make([]dto.MediaPhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, dto.MediaPhotoResponse{
			ID:       photo.ID,
			Position: photo.Position,
			URL:      photo.URL,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.MediaPhotosListResponse{Items: items})
}

func (h *MediaHandler) PhotoDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	raw := strings.TrimSpace(chi.URLParam(r, "photoID"))
	photoID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || photoID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo id")
		return
	}

	if err := h.service.DeletePhoto(r.Context(), identity.UserID, photoID); err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid media request")
	case errors.Is(err, mediasvc.ErrPhotoTooLarge):
		writeBadRequest(w, "PHOTO_TOO_LARGE", "photo exceeds the size limit")
	case errors.Is(err, mediasvc.ErrUnsupportedFormat):
		writeBadRequest(w, "UNSUPPORTED_FORMAT", "only jpeg, png and webp photos are accepted")
	case errors.Is(err, mediasvc.ErrPhotoLimitReached):
		writeConflict(w, "PHOTO_LIMIT_REACHED", "photo limit reached, delete one first")
	case errors.Is(err, moderationsvc.ErrImageRejected):
		writeBadRequest(w, "IMAGE_REJECTED", "photo was rejected by moderation")
	case errors.Is(err, moderationsvc.ErrUnavailable):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "MODERATION_UNAVAILABLE",
			Message: "moderation is temporarily unavailable, try again later",
		})
	default:
		writeInternal(w, "INTERNAL_ERROR", "media operation failed")
	}
}
