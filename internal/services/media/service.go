package media

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrPhotoLimitReached = errors.New("photo limit reached")
	ErrPhotoTooLarge     = errors.New("photo exceeds size limit")
	ErrUnsupportedFormat = errors.New("unsupported photo format")
)

const defaultPresignTTL = 15 * time.Minute

type Store interface {
	CreatePhoto(ctx context.Context, userID int64, objectKey string, maxPhotos int) (PhotoRecord, error)
	ListPhotos(ctx context.Context, userID int64) ([]PhotoRecord, error)
	DeletePhoto(ctx context.Context, userID, photoID int64) (string, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type ImageModerator interface {
	CheckImage(ctx context.Context, format string, data []byte) error
}

type Config struct {
	MaxPhotos      int
	MaxUploadBytes int64
	PresignTTL     time.Duration
}

type PhotoRecord struct {
	ID        int64
	Position  int
	ObjectKey string
	CreatedAt time.Time
}

type Photo struct {
	ID        int64
	Position  int
	URL       string
	CreatedAt time.Time
}

type Service struct {
	store     Store
	storage   ObjectStorage
	moderator ImageModerator
	cfg       Config
	now       func() time.Time
}

type Dependencies struct {
	Store     Store
	Storage   ObjectStorage
	Moderator ImageModerator
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = 10
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = defaultPresignTTL
	}

	return &Service{
		store:     deps.Store,
		storage:   deps.Storage,
		moderator: deps.Moderator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// UploadPhoto stores a profile photo after it clears the image safety
// gate. The whole payload is buffered so the classifier and the object
// store read the same bytes.
func (s *Service) UploadPhoto(ctx context.Context, userID int64, fileName, contentType string, body io.Reader, size int64) (Photo, error) {
	if userID <= 0 || body == nil || size <= 0 {
		return Photo{}, ErrValidation
	}
	if size > s.cfg.MaxUploadBytes {
		return Photo{}, ErrPhotoTooLarge
	}
	if s.store == nil || s.storage == nil || s.moderator == nil {
		return Photo{}, fmt.Errorf("media dependencies are not configured")
	}

	format, err := imageFormat(fileName, contentType)
	if err != nil {
		return Photo{}, err
	}

	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return Photo{}, fmt.Errorf("read photo payload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return Photo{}, ErrPhotoTooLarge
	}

	if err := s.moderator.CheckImage(ctx, format, data); err != nil {
		return Photo{}, err
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Photo{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildPhotoObjectKey(userID, fileName, s.now().UTC())
	if err != nil {
		return Photo{}, fmt.Errorf("build object key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "image/" + format
	}

	if err := s.storage.PutPhoto(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return Photo{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.CreatePhoto(ctx, userID, objectKey, s.cfg.MaxPhotos)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		if errors.Is(err, ErrPhotoLimitReached) {
			return Photo{}, ErrPhotoLimitReached
		}
		return Photo{}, fmt.Errorf("create photo record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, s.cfg.PresignTTL)
	if err != nil {
		return Photo{}, fmt.Errorf("presign photo url: %w", err)
	}

	return Photo{
		ID:        record.ID,
		Position:  record.Position,
		URL:       url,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *Service) ListPhotos(ctx context.Context, userID int64) ([]Photo, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("media dependencies are not configured")
	}

	records, err := s.store.ListPhotos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list photo records: %w", err)
	}

	photos := make([]Photo, 0, len(records))
	for _, rec := range records {
		url, err := s.storage.PresignGet(ctx, rec.ObjectKey, s.cfg.PresignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign photo url: %w", err)
		}
		photos = append(photos, Photo{
			ID:        rec.ID,
			Position:  rec.Position,
			URL:       url,
			CreatedAt: rec.CreatedAt,
		})
	}

	return photos, nil
}

func (s *Service) DeletePhoto(ctx context.Context, userID, photoID int64) error {
	if userID <= 0 || photoID <= 0 {
		return ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return fmt.Errorf("media dependencies are not configured")
	}

	objectKey, err := s.store.DeletePhoto(ctx, userID, photoID)
	if err != nil {
		return fmt.Errorf("delete photo record: %w", err)
	}

	if err := s.storage.Delete(ctx, objectKey); err != nil {
		return fmt.Errorf("delete photo object: %w", err)
	}

	return nil
}

func imageFormat(fileName, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch ct {
	case "image/jpeg", "image/jpg":
		return "jpeg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	}

	switch strings.ToLower(path.Ext(strings.TrimSpace(fileName))) {
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".png":
		return "png", nil
	case ".webp":
		return "webp", nil
	}

	return "", ErrUnsupportedFormat
}

func buildPhotoObjectKey(userID int64, fileName string, now time.Time) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}

	stamp := now.Format("20060102T150405")
	return fmt.Sprintf("users/%d/photos/%s_%s%s", userID, stamp, hex.EncodeToString(rnd), ext), nil
}
