package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrBlocked           = errors.New("users are blocked")
)

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, actorUserID, targetUserID int64, action string, now time.Time) (pgrepo.SwipeRecord, bool, error)
}

type MatchStore interface {
	CreateIfMutualLike(ctx context.Context, tx pgx.Tx, userID, targetID int64) (model.Match, bool, error)
}

type BlockStore interface {
	ExistsBetween(ctx context.Context, userID, otherID int64) (bool, error)
}

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (model.Profile, error)
}

// SessionQueue removes a decided candidate from the actor's discovery
// queue once the decision is durable.
type SessionQueue interface {
	MarkDecided(ctx context.Context, viewerID, targetID int64) error
}

type Result struct {
	Action         enums.SwipeAction
	Recorded       bool
	MatchCreated   bool
	Match          model.Match
	MatchedProfile *model.Profile
}

type Service struct {
	db         pgrepo.TxBeginner
	swipeStore SwipeStore
	matchStore MatchStore
	blockStore BlockStore
	profiles   ProfileStore
	sessions   SessionQueue
	now        func() time.Time
}

type Dependencies struct {
	Pool       pgrepo.TxBeginner
	SwipeStore SwipeStore
	MatchStore MatchStore
	BlockStore BlockStore
	Profiles   ProfileStore
	Sessions   SessionQueue
}

func NewService(deps Dependencies) *Service {
	return &Service{
		db:         deps.Pool,
		swipeStore: deps.SwipeStore,
		matchStore: deps.MatchStore,
		blockStore: deps.BlockStore,
		profiles:   deps.Profiles,
		sessions:   deps.Sessions,
		now:        time.Now,
	}
}

// Decide records a swipe and, for a positive decision, creates the
// mutual match inside the same transaction. The decision is idempotent
// per pair: a repeat keeps the first recorded action. The reciprocal
// check still runs on repeats so a match missed by an earlier partial
// failure gets created on retry. On a fresh match the counterpart's
// profile comes back with the result for the match screen.
func (s *Service) Decide(ctx context.Context, actorID, targetID int64, action enums.SwipeAction) (Result, error) {
	if actorID <= 0 || targetID <= 0 || actorID == targetID {
		return Result{}, ErrValidation
	}
	if !action.Valid() {
		return Result{}, ErrUnsupportedAction
	}
	if s.swipeStore == nil || s.matchStore == nil || s.blockStore == nil {
		return Result{}, fmt.Errorf("swipe dependencies are not configured")
	}

	blocked, err := s.blockStore.ExistsBetween(ctx, actorID, targetID)
	if err != nil {
		return Result{}, err
	}
	if blocked {
		return Result{}, ErrBlocked
	}

	now := s.now().UTC()
	result := Result{}

	if err := pgrepo.WithTx(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		rec, created, err := s.swipeStore.Create(txCtx, tx, actorID, targetID, string(action), now)
		if err != nil {
			return err
		}
		result.Recorded = created
		result.Action = enums.SwipeAction(rec.Action)

		if !result.Action.IsLike() {
			return nil
		}

		match, matchCreated, err := s.matchStore.CreateIfMutualLike(txCtx, tx, actorID, targetID)
		if err != nil {
			return err
		}
		result.MatchCreated = matchCreated
		result.Match = match
		return nil
	}); err != nil {
		return Result{}, err
	}

	if result.MatchCreated && s.profiles != nil {
		if profile, err := s.profiles.Get(ctx, targetID); err == nil {
			result.MatchedProfile = &profile
		}
	}

	if s.sessions != nil {
		// Removal failure leaves the candidate queued; the repeat
		// decide is a no-op, so the queue self-heals.
		_ = s.sessions.MarkDecided(ctx, actorID, targetID)
	}

	return result, nil
}
