package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	mediasvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/media"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// CreatePhoto allocates the lowest free position under a row lock so
// concurrent uploads cannot exceed the per-user limit.
func (r *PhotoRepo) CreatePhoto(ctx context.Context, userID int64, objectKey string, maxPhotos int) (mediasvc.PhotoRecord, error) {
	if userID <= 0 || objectKey == "" {
		return mediasvc.PhotoRecord{}, fmt.Errorf("invalid photo payload")
	}
	if maxPhotos <= 0 {
		maxPhotos = 10
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mediasvc.PhotoRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
SELECT position
FROM photos
WHERE user_id = $1
ORDER BY position
FOR UPDATE
`, userID)
	if err != nil {
		return mediasvc.PhotoRecord{}, fmt.Errorf("query photo positions: %w", err)
	}

	positions := map[int]struct{}{}
	for rows.Next() {
		var position int
		if err := rows.Scan(&position); err != nil {
			rows.Close()
			return mediasvc.PhotoRecord{}, fmt.Errorf("scan photo position: %w", err)
		}
		positions[position] = struct{}{}
	}
	rows.Close()

	if len(positions) >= maxPhotos {
		return mediasvc.PhotoRecord{}, mediasvc.ErrPhotoLimitReached
	}

	position := 0
	for i := 1; i <= maxPhotos; i++ {
		if _, ok := positions[i]; !ok {
			position = i
			break
		}
	}
	if position == 0 {
		return mediasvc.PhotoRecord{}, mediasvc.ErrPhotoLimitReached
	}

	var record mediasvc.PhotoRecord
	err = tx.QueryRow(ctx, `
INSERT INTO photos (user_id, s3_key, position, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, position, s3_key, created_at
`, userID, objectKey, position).Scan(&record.ID, &record.Position, &record.ObjectKey, &record.CreatedAt)
	if err != nil {
		return mediasvc.PhotoRecord{}, fmt.Errorf("insert photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mediasvc.PhotoRecord{}, fmt.Errorf("commit transaction: %w", err)
	}

	return record, nil
}

func (r *PhotoRepo) ListPhotos(ctx context.Context, userID int64) ([]mediasvc.PhotoRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, position, s3_key, created_at
FROM photos
WHERE user_id = $1
ORDER BY position ASC, created_at ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]mediasvc.PhotoRecord, 0)
	for rows.Next() {
		var record mediasvc.PhotoRecord
		if err := rows.Scan(&record.ID, &record.Position, &record.ObjectKey, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, record)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate photos: %w", rows.Err())
	}

	return photos, nil
}

func (r *PhotoRepo) DeletePhoto(ctx context.Context, userID, photoID int64) (string, error) {
	if userID <= 0 || photoID <= 0 {
		return "", fmt.Errorf("invalid photo delete payload")
	}

	var objectKey string
	err := r.pool.QueryRow(ctx, `
DELETE FROM photos
WHERE id = $1 AND user_id = $2
RETURNING s3_key
`, photoID, userID).Scan(&objectKey)
	if err != nil {
		return "", fmt.Errorf("delete photo: %w", err)
	}

	return objectKey, nil
}
