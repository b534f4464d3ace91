package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	user_id,
	display_name,
	age,
	city,
	state,
	latitude,
	longitude,
	tagline,
	bio,
	interests,
	photo_urls,
	gender,
	orientation,
	relationship_goal,
	height_cm,
	body_type,
	smoking,
	drinking,
	zodiac,
	religion,
	languages,
	has_pets,
	accessibility,
	publicly_searchable,
	show_like_count,
	created_at,
	updated_at`

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID,
		&p.DisplayName,
		&p.Age,
		&p.City,
		&p.State,
		&p.Latitude,
		&p.Longitude,
		&p.Tagline,
		&p.Bio,
		&p.Interests,
		&p.PhotoURLs,
		&p.Gender,
		&p.Orientation,
		&p.RelationshipGoal,
		&p.HeightCM,
		&p.BodyType,
		&p.Smoking,
		&p.Drinking,
		&p.Zodiac,
		&p.Religion,
		&p.Languages,
		&p.HasPets,
		&p.Accessibility,
		&p.PubliclySearchable,
		&p.ShowLikeCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *ProfileRepo) Get(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = $1
`, userID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, p model.Profile) error {
	if p.UserID <= 0 {
		return fmt.Errorf("invalid profile payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO profiles (
	user_id,
	display_name,
	age,
	city,
	state,
	latitude,
	longitude,
	tagline,
	bio,
	interests,
	photo_urls,
	gender,
	orientation,
	relationship_goal,
	height_cm,
	body_type,
	smoking,
	drinking,
	zodiac,
	religion,
	languages,
	has_pets,
	accessibility,
	publicly_searchable,
	show_like_count,
	created_at,
	updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, NOW(), NOW()
)
ON CONFLICT (user_id) DO UPDATE SET
	display_name = EXCLUDED.display_name,
	age = EXCLUDED.age,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	tagline = EXCLUDED.tagline,
	bio = EXCLUDED.bio,
	interests = EXCLUDED.interests,
	photo_urls = EXCLUDED.photo_urls,
	gender = EXCLUDED.gender,
	orientation = EXCLUDED.orientation,
	relationship_goal = EXCLUDED.relationship_goal,
	height_cm = EXCLUDED.height_cm,
	body_type = EXCLUDED.body_type,
	smoking = EXCLUDED.smoking,
	drinking = EXCLUDED.drinking,
	zodiac = EXCLUDED.zodiac,
	religion = EXCLUDED.religion,
	languages = EXCLUDED.languages,
	has_pets = EXCLUDED.has_pets,
	accessibility = EXCLUDED.accessibility,
	publicly_searchable = EXCLUDED.publicly_searchable,
	show_like_count = EXCLUDED.show_like_count,
	updated_at = NOW()
`,
		p.UserID,
		p.DisplayName,
		p.Age,
		p.City,
		p.State,
		p.Latitude,
		p.Longitude,
		p.Tagline,
		p.Bio,
		p.Interests,
		p.PhotoURLs,
		p.Gender,
		p.Orientation,
		p.RelationshipGoal,
		p.HeightCM,
		p.BodyType,
		p.Smoking,
		p.Drinking,
		p.Zodiac,
		p.Religion,
		p.Languages,
		p.HasPets,
		p.Accessibility,
		p.PubliclySearchable,
		p.ShowLikeCount,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) UpdatePhotoURLs(ctx context.Context, userID int64, urls []string) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE profiles
SET photo_urls = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, urls)
	if err != nil {
		return fmt.Errorf("update profile photos: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// ListCandidates returns profiles the viewer has not decided on yet.
// Blocks in either direction and existing matches exclude a candidate;
// the preference-level filtering happens in the discovery service.
func (r *ProfileRepo) ListCandidates(ctx context.Context, viewerID int64, limit int) ([]model.Profile, error) {
	if viewerID <= 0 {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles p
WHERE
	p.user_id <> $1
	AND NOT EXISTS (
		SELECT 1
		FROM swipes s
		WHERE s.actor_user_id = $1 AND s.target_user_id = p.user_id
	)
	AND NOT EXISTS (
		SELECT 1
		FROM blocks b
		WHERE (b.actor_user_id = $1 AND b.target_user_id = p.user_id)
			OR (b.actor_user_id = p.user_id AND b.target_user_id = $1)
	)
	AND NOT EXISTS (
		SELECT 1
		FROM matches m
		WHERE m.user_a_id = LEAST($1, p.user_id)
			AND m.user_b_id = GREATEST($1, p.user_id)
	)
ORDER BY p.created_at DESC, p.user_id DESC
LIMIT $2
`, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidate profiles: %w", err)
	}
	defer rows.Close()

	items := make([]model.Profile, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate profile: %w", err)
		}
		items = append(items, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate candidate profiles: %w", rows.Err())
	}

	return items, nil
}

// GetMany loads profiles by id preserving no particular order.
func (r *ProfileRepo) GetMany(ctx context.Context, userIDs []int64) ([]model.Profile, error) {
	if len(userIDs) == 0 {
		return []model.Profile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = ANY($1)
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	defer rows.Close()

	items := make([]model.Profile, 0, len(userIDs))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return items, nil
}

// ClearCoordinatesOlderThan drops exact coordinates from profiles not
// updated since the cutoff. City and state keep working for discovery.
func (r *ProfileRepo) ClearCoordinatesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET latitude = NULL, longitude = NULL
WHERE updated_at < $1
  AND (latitude IS NOT NULL OR longitude IS NOT NULL)
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clear stale coordinates: %w", err)
	}

	return tag.RowsAffected(), nil
}
