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

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Insert(ctx context.Context, m model.Message, now time.Time) (model.Message, error) {
	if m.MatchID <= 0 {
		return model.Message{}, fmt.Errorf("invalid message payload")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (
	match_id,
	sender_id,
	text,
	audio_url,
	image_url,
	type,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at
`, m.MatchID, m.SenderID, m.Text, m.AudioURL, m.ImageURL, m.Type, now.UTC()).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}

	return m, nil
}

// InsertUniqueType inserts only when the conversation has no message of
// the given type yet. Used for the opening system message and the
// one-shot compatibility analysis.
func (r *MessageRepo) InsertUniqueType(ctx context.Context, tx pgx.Tx, m model.Message, now time.Time) (model.Message, bool, error) {
	if m.MatchID <= 0 || m.Type == "" {
		return model.Message{}, false, fmt.Errorf("invalid message payload")
	}
	if tx == nil {
		return model.Message{}, false, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	err := tx.QueryRow(ctx, `
INSERT INTO messages (
	match_id,
	sender_id,
	text,
	audio_url,
	image_url,
	type,
	created_at
)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (
	SELECT 1
	FROM messages
	WHERE match_id = $1 AND type = $6
)
RETURNING id, created_at
`, m.MatchID, m.SenderID, m.Text, m.AudioURL, m.ImageURL, m.Type, now.UTC()).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, false, nil
		}
		return model.Message{}, false, fmt.Errorf("insert unique-type message: %w", err)
	}

	return m, true, nil
}

func (r *MessageRepo) ListByMatch(ctx context.Context, matchID int64, limit int) ([]model.Message, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("invalid match id")
	}
	if limit <= 0 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, match_id, sender_id, text, audio_url, image_url, type, created_at
FROM messages
WHERE match_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0, 64)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(
			&m.ID,
			&m.MatchID,
			&m.SenderID,
			&m.Text,
			&m.AudioURL,
			&m.ImageURL,
			&m.Type,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}

func (r *MessageRepo) HasType(ctx context.Context, matchID int64, msgType string) (bool, error) {
	if matchID <= 0 || msgType == "" {
		return false, fmt.Errorf("invalid message lookup payload")
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM messages
WHERE match_id = $1 AND type = $2
LIMIT 1
`, matchID, msgType).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup message type: %w", err)
	}

	return true, nil
}

func (r *MessageRepo) DeleteByMatch(ctx context.Context, tx pgx.Tx, matchID int64) error {
	if matchID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM messages
WHERE match_id = $1
`, matchID); err != nil {
		return fmt.Errorf("delete match messages: %w", err)
	}

	return nil
}
