package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type PreferenceRepo struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepo(pool *pgxpool.Pool) *PreferenceRepo {
	return &PreferenceRepo{pool: pool}
}

func (r *PreferenceRepo) Get(ctx context.Context, userID int64) (model.Preferences, error) {
	if userID <= 0 {
		return model.Preferences{}, fmt.Errorf("invalid user id")
	}

	var p model.Preferences
	err := r.pool.QueryRow(ctx, `
SELECT
	user_id,
	age_min,
	age_max,
	height_min_cm,
	height_max_cm,
	max_distance_km,
	search_gender,
	goals,
	body_types,
	smoking,
	drinking,
	zodiacs,
	religions,
	pets,
	accessibility,
	state,
	city,
	name_query,
	enable_message_suggestions
FROM preferences
WHERE user_id = $1
`, userID).Scan(
		&p.UserID,
		&p.AgeMin,
		&p.AgeMax,
		&p.HeightMinCM,
		&p.HeightMaxCM,
		&p.MaxDistanceKM,
		&p.SearchGender,
		&p.Goals,
		&p.BodyTypes,
		&p.Smoking,
		&p.Drinking,
		&p.Zodiacs,
		&p.Religions,
		&p.Pets,
		&p.Accessibility,
		&p.State,
		&p.City,
		&p.NameQuery,
		&p.EnableMessageSuggestions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Preferences{}, ErrPreferencesNotFound
		}
		return model.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}

	return p, nil
}

func (r *PreferenceRepo) Upsert(ctx context.Context, p model.Preferences) error {
	if p.UserID <= 0 {
		return fmt.Errorf("invalid preferences payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO preferences (
	user_id,
	age_min,
	age_max,
	height_min_cm,
	height_max_cm,
	max_distance_km,
	search_gender,
	goals,
	body_types,
	smoking,
	drinking,
	zodiacs,
	religions,
	pets,
	accessibility,
	state,
	city,
	name_query,
	enable_message_suggestions,
	updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, NOW()
)
ON CONFLICT (user_id) DO UPDATE SET
	age_min = EXCLUDED.age_min,
	age_max = EXCLUDED.age_max,
	height_min_cm = EXCLUDED.height_min_cm,
	height_max_cm = EXCLUDED.height_max_cm,
	max_distance_km = EXCLUDED.max_distance_km,
	search_gender = EXCLUDED.search_gender,
	goals = EXCLUDED.goals,
	body_types = EXCLUDED.body_types,
	smoking = EXCLUDED.smoking,
	drinking = EXCLUDED.drinking,
	zodiacs = EXCLUDED.zodiacs,
	religions = EXCLUDED.religions,
	pets = EXCLUDED.pets,
	accessibility = EXCLUDED.accessibility,
	state = EXCLUDED.state,
	city = EXCLUDED.city,
	name_query = EXCLUDED.name_query,
	enable_message_suggestions = EXCLUDED.enable_message_suggestions,
	updated_at = NOW()
`,
		p.UserID,
		p.AgeMin,
		p.AgeMax,
		p.HeightMinCM,
		p.HeightMaxCM,
		p.MaxDistanceKM,
		p.SearchGender,
		p.Goals,
		p.BodyTypes,
		p.Smoking,
		p.Drinking,
		p.Zodiacs,
		p.Religions,
		p.Pets,
		p.Accessibility,
		p.State,
		p.City,
		p.NameQuery,
		p.EnableMessageSuggestions,
	); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
