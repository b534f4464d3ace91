package matches

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

type matchStoreStub struct {
	matches map[int64]model.Match
}

func (s *matchStoreStub) GetByID(_ context.Context, matchID int64) (model.Match, error) {
	m, ok := s.matches[matchID]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return m, nil
}

func (s *matchStoreStub) GetByUsers(context.Context, int64, int64) (model.Match, error) {
	return model.Match{}, pgrepo.ErrMatchNotFound
}

func (s *matchStoreStub) ListForUser(_ context.Context, userID int64, _ int) ([]model.Match, error) {
	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if m.UserAID == userID || m.UserBID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *matchStoreStub) DeleteByID(context.Context, pgx.Tx, int64) (bool, error) {
	return true, nil
}

type profileStoreStub struct {
	profiles map[int64]model.Profile
}

func (s *profileStoreStub) GetMany(_ context.Context, ids []int64) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(matches map[int64]model.Match, profiles map[int64]model.Profile) *Service {
	return NewService(Dependencies{
		MatchStore: &matchStoreStub{matches: matches},
		Profiles:   &profileStoreStub{profiles: profiles},
	})
}

func TestResolveMembership(t *testing.T) {
	svc := newTestService(map[int64]model.Match{
		10: {ID: 10, UserAID: 1, UserBID: 2},
	}, nil)
	ctx := context.Background()

	match, err := svc.Resolve(ctx, 1, 10)
	if err != nil {
		t.Fatalf("resolve as member: %v", err)
	}
	if match.Counterpart(1) != 2 {
		t.Fatalf("unexpected counterpart: %d", match.Counterpart(1))
	}

	if _, err := svc.Resolve(ctx, 3, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-member must be rejected, got %v", err)
	}
	if _, err := svc.Resolve(ctx, 1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing match must be reported, got %v", err)
	}
	if _, err := svc.Resolve(ctx, 0, 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid user id must be rejected, got %v", err)
	}
}

func TestListPairsCounterpartProfiles(t *testing.T) {
	svc := newTestService(
		map[int64]model.Match{
			10: {ID: 10, UserAID: 1, UserBID: 2},
			11: {ID: 11, UserAID: 1, UserBID: 3},
		},
		map[int64]model.Profile{
			2: {UserID: 2, DisplayName: "Bruno"},
			3: {UserID: 3, DisplayName: "Caio"},
		},
	)

	items, err := svc.List(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Counterpart.UserID != item.Match.Counterpart(1) {
			t.Fatalf("counterpart profile mismatch: %+v", item)
		}
		if item.Counterpart.DisplayName == "" {
			t.Fatalf("counterpart profile not hydrated: %+v", item)
		}
	}
}

func TestListSkipsMatchesWithoutProfiles(t *testing.T) {
	svc := newTestService(
		map[int64]model.Match{
			10: {ID: 10, UserAID: 1, UserBID: 2},
		},
		map[int64]model.Profile{},
	)

	items, err := svc.List(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("match without a counterpart profile must be dropped, got %d", len(items))
	}
}
