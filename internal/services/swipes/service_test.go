package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

// stubTx satisfies pgx.Tx for stores that never touch the connection.
type stubTx struct {
	pgx.Tx
}

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

type stubBeginner struct{}

func (stubBeginner) Begin(context.Context) (pgx.Tx, error) { return stubTx{}, nil }

type fakeSwipeStore struct {
	actions map[[2]int64]string
	err     error
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{actions: map[[2]int64]string{}}
}

func (s *fakeSwipeStore) Create(_ context.Context, _ pgx.Tx, actor, target int64, action string, now time.Time) (pgrepo.SwipeRecord, bool, error) {
	if s.err != nil {
		return pgrepo.SwipeRecord{}, false, s.err
	}
	key := [2]int64{actor, target}
	if existing, ok := s.actions[key]; ok {
		return pgrepo.SwipeRecord{ActorUserID: actor, TargetUserID: target, Action: existing, CreatedAt: now}, false, nil
	}
	s.actions[key] = action
	return pgrepo.SwipeRecord{ActorUserID: actor, TargetUserID: target, Action: action, CreatedAt: now}, true, nil
}

func (s *fakeSwipeStore) isLike(actor, target int64) bool {
	action := enums.SwipeAction(s.actions[[2]int64{actor, target}])
	return action.IsLike()
}

type fakeMatchStore struct {
	swipes  *fakeSwipeStore
	matches map[[2]int64]model.Match
	nextID  int64
}

func newFakeMatchStore(swipes *fakeSwipeStore) *fakeMatchStore {
	return &fakeMatchStore{swipes: swipes, matches: map[[2]int64]model.Match{}, nextID: 1}
}

func (s *fakeMatchStore) CreateIfMutualLike(_ context.Context, _ pgx.Tx, userID, targetID int64) (model.Match, bool, error) {
	if !s.swipes.isLike(userID, targetID) || !s.swipes.isLike(targetID, userID) {
		return model.Match{}, false, nil
	}
	a, b := userID, targetID
	if a > b {
		a, b = b, a
	}
	key := [2]int64{a, b}
	if existing, ok := s.matches[key]; ok {
		return existing, false, nil
	}
	match := model.Match{ID: s.nextID, UserAID: a, UserBID: b}
	s.nextID++
	s.matches[key] = match
	return match, true, nil
}

type profileStoreStub struct {
	profiles map[int64]model.Profile
}

func (s *profileStoreStub) Get(_ context.Context, userID int64) (model.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return p, nil
}

type queueStub struct {
	decided [][2]int64
}

func (s *queueStub) MarkDecided(_ context.Context, viewerID, targetID int64) error {
	s.decided = append(s.decided, [2]int64{viewerID, targetID})
	return nil
}

type blockStoreStub struct {
	blocked bool
	err     error
}

func (s blockStoreStub) ExistsBetween(context.Context, int64, int64) (bool, error) {
	return s.blocked, s.err
}

type swipeFixture struct {
	svc     *Service
	swipes  *fakeSwipeStore
	matches *fakeMatchStore
	queue   *queueStub
}

func newSwipeFixture(blocks blockStoreStub) swipeFixture {
	swipes := newFakeSwipeStore()
	matches := newFakeMatchStore(swipes)
	queue := &queueStub{}
	svc := NewService(Dependencies{
		Pool:       stubBeginner{},
		SwipeStore: swipes,
		MatchStore: matches,
		BlockStore: blocks,
		Profiles: &profileStoreStub{profiles: map[int64]model.Profile{
			1: {UserID: 1, DisplayName: "Ana"},
			2: {UserID: 2, DisplayName: "Bia"},
		}},
		Sessions: queue,
	})
	return swipeFixture{svc: svc, swipes: swipes, matches: matches, queue: queue}
}

func TestDecideValidation(t *testing.T) {
	f := newSwipeFixture(blockStoreStub{})
	ctx := context.Background()

	cases := []struct {
		name    string
		actor   int64
		target  int64
		action  enums.SwipeAction
		wantErr error
	}{
		{name: "zero actor", actor: 0, target: 2, action: enums.SwipeActionLike, wantErr: ErrValidation},
		{name: "zero target", actor: 1, target: 0, action: enums.SwipeActionLike, wantErr: ErrValidation},
		{name: "self swipe", actor: 1, target: 1, action: enums.SwipeActionLike, wantErr: ErrValidation},
		{name: "unknown action", actor: 1, target: 2, action: "WINK", wantErr: ErrUnsupportedAction},
	}

	for _, tc := range cases {
		if _, err := f.svc.Decide(ctx, tc.actor, tc.target, tc.action); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestDecideRejectsBlockedPair(t *testing.T) {
	f := newSwipeFixture(blockStoreStub{blocked: true})

	_, err := f.svc.Decide(context.Background(), 1, 2, enums.SwipeActionLike)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("got %v, want ErrBlocked", err)
	}
}

func TestDecidePropagatesBlockLookupError(t *testing.T) {
	lookupErr := errors.New("db down")
	f := newSwipeFixture(blockStoreStub{err: lookupErr})

	_, err := f.svc.Decide(context.Background(), 1, 2, enums.SwipeActionDislike)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("got %v, want lookup error", err)
	}
}

func TestDecideRepeatKeepsFirstAction(t *testing.T) {
	f := newSwipeFixture(blockStoreStub{})
	ctx := context.Background()

	first, err := f.svc.Decide(ctx, 1, 2, enums.SwipeActionLike)
	if err != nil {
		t.Fatalf("first decide: %v", err)
	}
	if !first.Recorded || first.Action != enums.SwipeActionLike {
		t.Fatalf("first decide must record the like, got %+v", first)
	}

	repeat, err := f.svc.Decide(ctx, 1, 2, enums.SwipeActionDislike)
	if err != nil {
		t.Fatalf("repeat decide: %v", err)
	}
	if repeat.Recorded {
		t.Fatal("repeat decide must not record a second decision")
	}
	if repeat.Action != enums.SwipeActionLike {
		t.Fatalf("repeat must surface the first recorded action, got %s", repeat.Action)
	}
	if len(f.swipes.actions) != 1 {
		t.Fatalf("expected a single stored decision, got %d", len(f.swipes.actions))
	}
}

func TestMutualLikeCreatesSingleMatch(t *testing.T) {
	f := newSwipeFixture(blockStoreStub{})
	ctx := context.Background()

	oneWay, err := f.svc.Decide(ctx, 1, 2, enums.SwipeActionLike)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if oneWay.MatchCreated {
		t.Fatal("a one-way like must not create a match")
	}

	mutual, err := f.svc.Decide(ctx, 2, 1, enums.SwipeActionLike)
	if err != nil {
		t.Fatalf("reciprocal like: %v", err)
	}
	if !mutual.MatchCreated {
		t.Fatal("reciprocal like must create the match")
	}
	if mutual.Match.UserAID != 1 || mutual.Match.UserBID != 2 {
		t.Fatalf("match pair must be canonical, got %+v", mutual.Match)
	}
	if mutual.MatchedProfile == nil || mutual.MatchedProfile.UserID != 1 {
		t.Fatalf("fresh match must carry the counterpart profile, got %+v", mutual.MatchedProfile)
	}

	again, err := f.svc.Decide(ctx, 2, 1, enums.SwipeActionLike)
	if err != nil {
		t.Fatalf("repeat after match: %v", err)
	}
	if again.MatchCreated {
		t.Fatal("repeat decide must not report a second match")
	}
	if len(f.matches.matches) != 1 {
		t.Fatalf("expected exactly one match row, got %d", len(f.matches.matches))
	}
}

func TestDecideClearsQueueOnlyOnSuccess(t *testing.T) {
	f := newSwipeFixture(blockStoreStub{})
	ctx := context.Background()

	if _, err := f.svc.Decide(ctx, 1, 2, enums.SwipeActionDislike); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(f.queue.decided) != 1 || f.queue.decided[0] != [2]int64{1, 2} {
		t.Fatalf("durable decide must clear the candidate from the queue, got %v", f.queue.decided)
	}

	f.swipes.err = errors.New("store down")
	if _, err := f.svc.Decide(ctx, 1, 3, enums.SwipeActionLike); err == nil {
		t.Fatal("expected the store failure to surface")
	}
	if len(f.queue.decided) != 1 {
		t.Fatalf("failed decide must leave the candidate queued, got %v", f.queue.decided)
	}
}
