package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestSessionQueueRoundTrip(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()
	ttl := 10 * time.Minute

	entries := []discoverysvc.QueueEntry{
		{UserID: 11, Score: 92},
		{UserID: 12, Score: 77},
		{UserID: 13, Score: 50},
	}
	if err := repo.Replace(ctx, 1, entries, ttl); err != nil {
		t.Fatalf("replace queue: %v", err)
	}

	n, err := repo.Len(ctx, 1)
	if err != nil || n != 3 {
		t.Fatalf("queue length: n=%d err=%v", n, err)
	}

	for i, want := range entries {
		got, err := repo.Peek(ctx, 1)
		if err != nil {
			t.Fatalf("peek %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("peek %d: got %+v, want %+v", i, got, want)
		}
		if err := repo.Ack(ctx, 1, got.UserID, ttl); err != nil {
			t.Fatalf("ack %d: %v", i, err)
		}
	}

	if _, err := repo.Peek(ctx, 1); !errors.Is(err, discoverysvc.ErrSessionEmpty) {
		t.Fatalf("drained queue must report empty session, got %v", err)
	}

	seen, err := repo.Seen(ctx, 1)
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 seen candidates, got %v", seen)
	}
}

func TestPeekLeavesCandidateQueued(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()
	ttl := 10 * time.Minute

	if err := repo.Replace(ctx, 1, []discoverysvc.QueueEntry{{UserID: 42, Score: 70}}, ttl); err != nil {
		t.Fatalf("replace queue: %v", err)
	}

	// Serving without a recorded decision must not consume the head
	// or mark it seen, otherwise a failed swipe hides the candidate
	// for the rest of the session.
	if _, err := repo.Peek(ctx, 1); err != nil {
		t.Fatalf("peek: %v", err)
	}
	if seen, _ := repo.Seen(ctx, 1); len(seen) != 0 {
		t.Fatalf("peek must not mark the candidate seen, got %v", seen)
	}
	if n, _ := repo.Len(ctx, 1); n != 1 {
		t.Fatalf("peek must leave the candidate queued, len=%d", n)
	}

	got, err := repo.Peek(ctx, 1)
	if err != nil || got.UserID != 42 {
		t.Fatalf("candidate must be re-served until decided, got %+v err=%v", got, err)
	}
}

func TestAckOutOfOrder(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()
	ttl := 10 * time.Minute

	entries := []discoverysvc.QueueEntry{
		{UserID: 11, Score: 92},
		{UserID: 12, Score: 77},
	}
	if err := repo.Replace(ctx, 1, entries, ttl); err != nil {
		t.Fatalf("replace queue: %v", err)
	}

	// Another device may decide a candidate that is not the head.
	if err := repo.Ack(ctx, 1, 12, ttl); err != nil {
		t.Fatalf("ack tail: %v", err)
	}

	head, err := repo.Peek(ctx, 1)
	if err != nil || head.UserID != 11 {
		t.Fatalf("head must survive a tail ack, got %+v err=%v", head, err)
	}
	if n, _ := repo.Len(ctx, 1); n != 1 {
		t.Fatalf("acked candidate must leave the queue, len=%d", n)
	}
	if seen, _ := repo.Seen(ctx, 1); len(seen) != 1 || seen[0] != 12 {
		t.Fatalf("acked candidate must be seen, got %v", seen)
	}
}

func TestSessionReplaceKeepsSeenSet(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()
	ttl := 10 * time.Minute

	if err := repo.Replace(ctx, 1, []discoverysvc.QueueEntry{{UserID: 11, Score: 60}}, ttl); err != nil {
		t.Fatalf("replace queue: %v", err)
	}
	if err := repo.Ack(ctx, 1, 11, ttl); err != nil {
		t.Fatalf("ack: %v", err)
	}

	if err := repo.Replace(ctx, 1, []discoverysvc.QueueEntry{{UserID: 12, Score: 55}}, ttl); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	seen, err := repo.Seen(ctx, 1)
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if len(seen) != 1 || seen[0] != 11 {
		t.Fatalf("seen set must survive a rebuild, got %v", seen)
	}
}

func TestSessionClear(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()
	ttl := time.Minute

	if err := repo.Replace(ctx, 1, []discoverysvc.QueueEntry{{UserID: 11, Score: 60}}, ttl); err != nil {
		t.Fatalf("replace queue: %v", err)
	}
	if err := repo.Ack(ctx, 1, 11, ttl); err != nil {
		t.Fatalf("ack: %v", err)
	}

	if err := repo.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, err := repo.Peek(ctx, 1); !errors.Is(err, discoverysvc.ErrSessionEmpty) {
		t.Fatalf("cleared queue must be empty, got %v", err)
	}
	seen, err := repo.Seen(ctx, 1)
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("cleared session must forget decided candidates, got %v", seen)
	}
}

func TestSessionTTLExpiry(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewSessionRepo(client)
	ctx := context.Background()

	if err := repo.Replace(ctx, 1, []discoverysvc.QueueEntry{{UserID: 11, Score: 60}}, time.Minute); err != nil {
		t.Fatalf("replace queue: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := repo.Peek(ctx, 1); !errors.Is(err, discoverysvc.ErrSessionEmpty) {
		t.Fatalf("expired queue must be empty, got %v", err)
	}
}
