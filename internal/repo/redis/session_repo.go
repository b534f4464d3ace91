package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
)

const (
	queuePrefix = "discovery_queue:"
	seenPrefix  = "discovery_seen:"
)

// SessionRepo keeps the per-viewer ranked candidate queue. The queue is
// a cache over the candidate query; losing it only costs a rebuild.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

// Replace swaps the viewer's queue for a freshly ranked one and resets
// its TTL. Previously decided candidates stay in the seen set so a
// rebuild cannot show them again within the session.
func (r *SessionRepo) Replace(ctx context.Context, userID int64, entries []discoverysvc.QueueEntry, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	values := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		values = append(values, encodeEntry(e))
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, queueKey(userID))
	if len(values) > 0 {
		pipe.RPush(ctx, queueKey(userID), values...)
	}
	pipe.Expire(ctx, queueKey(userID), ttl)
	pipe.Expire(ctx, seenKey(userID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace discovery queue: %w", err)
	}

	return nil
}

// Peek returns the head of the queue without removing it. The head
// stays in place until Ack confirms the decision on it.
func (r *SessionRepo) Peek(ctx context.Context, userID int64) (discoverysvc.QueueEntry, error) {
	if r.client == nil {
		return discoverysvc.QueueEntry{}, fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return discoverysvc.QueueEntry{}, fmt.Errorf("invalid user id")
	}

	raw, err := r.client.LIndex(ctx, queueKey(userID), 0).Result()
	if err != nil {
		if err == goredis.Nil {
			return discoverysvc.QueueEntry{}, discoverysvc.ErrSessionEmpty
		}
		return discoverysvc.QueueEntry{}, fmt.Errorf("peek discovery queue: %w", err)
	}

	return decodeEntry(raw)
}

// Ack removes a decided candidate from the queue and records it as
// seen so a rebuild cannot serve it again within the session. Acking a
// candidate that is no longer queued still marks it seen.
func (r *SessionRepo) Ack(ctx context.Context, userID, targetID int64, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 || targetID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	values, err := r.client.LRange(ctx, queueKey(userID), 0, -1).Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("scan discovery queue: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, raw := range values {
		entry, err := decodeEntry(raw)
		if err != nil {
			continue
		}
		if entry.UserID == targetID {
			pipe.LRem(ctx, queueKey(userID), 1, raw)
			break
		}
	}
	pipe.SAdd(ctx, seenKey(userID), strconv.FormatInt(targetID, 10))
	pipe.Expire(ctx, seenKey(userID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ack discovery candidate: %w", err)
	}
	return nil
}

func (r *SessionRepo) Len(ctx context.Context, userID int64) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	n, err := r.client.LLen(ctx, queueKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("discovery queue length: %w", err)
	}
	return n, nil
}

// Seen returns candidate ids already decided within the session.
func (r *SessionRepo) Seen(ctx context.Context, userID int64) ([]int64, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	members, err := r.client.SMembers(ctx, seenKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list seen candidates: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear drops the session entirely. Preference changes call this so the
// next load starts a fresh session.
func (r *SessionRepo) Clear(ctx context.Context, userID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return nil
	}

	if err := r.client.Del(ctx, queueKey(userID), seenKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear discovery session: %w", err)
	}
	return nil
}

func encodeEntry(e discoverysvc.QueueEntry) string {
	return strconv.FormatInt(e.UserID, 10) + ":" + strconv.Itoa(e.Score)
}

func decodeEntry(raw string) (discoverysvc.QueueEntry, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return discoverysvc.QueueEntry{}, fmt.Errorf("malformed queue entry %q", raw)
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return discoverysvc.QueueEntry{}, fmt.Errorf("malformed queue entry %q", raw)
	}
	score, err := strconv.Atoi(parts[1])
	if err != nil {
		return discoverysvc.QueueEntry{}, fmt.Errorf("malformed queue entry %q", raw)
	}

	return discoverysvc.QueueEntry{UserID: userID, Score: score}, nil
}

func queueKey(userID int64) string {
	return queuePrefix + strconv.FormatInt(userID, 10)
}

func seenKey(userID int64) string {
	return seenPrefix + strconv.FormatInt(userID, 10)
}
