package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("match not found")
	ErrForbidden  = errors.New("match does not involve user")
)

type MatchStore interface {
	GetByID(ctx context.Context, matchID int64) (model.Match, error)
	GetByUsers(ctx context.Context, userID, targetID int64) (model.Match, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Match, error)
	DeleteByID(ctx context.Context, tx pgx.Tx, matchID int64) (bool, error)
}

type MessageStore interface {
	DeleteByMatch(ctx context.Context, tx pgx.Tx, matchID int64) error
}

type SwipeStore interface {
	DeleteByPairBothDirections(ctx context.Context, tx pgx.Tx, userID, targetID int64) error
}

type BlockStore interface {
	Upsert(ctx context.Context, tx pgx.Tx, actorUserID, targetUserID int64, reason string) error
}

type ProfileStore interface {
	GetMany(ctx context.Context, userIDs []int64) ([]model.Profile, error)
}

// Item pairs a match with the counterpart's profile.
type Item struct {
	Match       model.Match
	Counterpart model.Profile
}

type Service struct {
	pool       pgrepo.TxBeginner
	matchStore MatchStore
	messages   MessageStore
	swipes     SwipeStore
	blocks     BlockStore
	profiles   ProfileStore
}

type Dependencies struct {
	Pool       pgrepo.TxBeginner
	MatchStore MatchStore
	Messages   MessageStore
	Swipes     SwipeStore
	Blocks     BlockStore
	Profiles   ProfileStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		pool:       deps.Pool,
		matchStore: deps.MatchStore,
		messages:   deps.Messages,
		swipes:     deps.Swipes,
		blocks:     deps.Blocks,
		profiles:   deps.Profiles,
	}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil || s.profiles == nil {
		return nil, fmt.Errorf("match dependencies are not configured")
	}

	matches, err := s.matchStore.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []Item{}, nil
	}

	counterpartIDs := make([]int64, 0, len(matches))
	for _, m := range matches {
		counterpartIDs = append(counterpartIDs, m.Counterpart(userID))
	}

	profiles, err := s.profiles.GetMany(ctx, counterpartIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}

	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		counterpart, ok := byID[m.Counterpart(userID)]
		if !ok {
			continue
		}
		items = append(items, Item{Match: m, Counterpart: counterpart})
	}

	return items, nil
}

// Resolve returns the match and verifies the user belongs to it.
func (s *Service) Resolve(ctx context.Context, userID, matchID int64) (model.Match, error) {
	if userID <= 0 || matchID <= 0 {
		return model.Match{}, ErrValidation
	}
	if s.matchStore == nil {
		return model.Match{}, fmt.Errorf("match dependencies are not configured")
	}

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, err
	}

	if match.UserAID != userID && match.UserBID != userID {
		return model.Match{}, ErrForbidden
	}

	return match, nil
}

// Unmatch dissolves the match: the conversation is deleted with it, and
// both decisions are erased so the pair can meet in discovery again.
func (s *Service) Unmatch(ctx context.Context, userID, matchID int64) error {
	match, err := s.Resolve(ctx, userID, matchID)
	if err != nil {
		return err
	}
	if s.messages == nil || s.swipes == nil {
		return fmt.Errorf("match dependencies are not configured")
	}

	return pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.messages.DeleteByMatch(txCtx, tx, match.ID); err != nil {
			return err
		}
		if _, err := s.matchStore.DeleteByID(txCtx, tx, match.ID); err != nil {
			return err
		}
		return s.swipes.DeleteByPairBothDirections(txCtx, tx, match.UserAID, match.UserBID)
	})
}

// Block records the block and dissolves any match with the target. The
// swipes stay: a blocked pair must not resurface in discovery.
func (s *Service) Block(ctx context.Context, userID, targetID int64, reason string) error {
	if userID <= 0 || targetID <= 0 || userID == targetID {
		return ErrValidation
	}
	if s.blocks == nil || s.matchStore == nil || s.messages == nil {
		return fmt.Errorf("match dependencies are not configured")
	}

	match, err := s.matchStore.GetByUsers(ctx, userID, targetID)
	hasMatch := err == nil
	if err != nil && !errors.Is(err, pgrepo.ErrMatchNotFound) {
		return err
	}

	return pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.blocks.Upsert(txCtx, tx, userID, targetID, strings.TrimSpace(reason)); err != nil {
			return err
		}
		if !hasMatch {
			return nil
		}
		if err := s.messages.DeleteByMatch(txCtx, tx, match.ID); err != nil {
			return err
		}
		_, err := s.matchStore.DeleteByID(txCtx, tx, match.ID)
		return err
	})
}
