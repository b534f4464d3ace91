package discovery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/rules"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrSessionEmpty    = errors.New("discovery session is empty")
	ErrProfileRequired = errors.New("viewer profile is required")
)

// QueueEntry is one ranked candidate in the session queue.
type QueueEntry struct {
	UserID int64
	Score  int
}

type Card struct {
	Profile    model.Profile
	Score      int
	DistanceKM float64
}

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (model.Profile, error)
	GetMany(ctx context.Context, userIDs []int64) ([]model.Profile, error)
	ListCandidates(ctx context.Context, viewerID int64, limit int) ([]model.Profile, error)
}

type PreferenceStore interface {
	Get(ctx context.Context, userID int64) (model.Preferences, error)
	Upsert(ctx context.Context, p model.Preferences) error
}

type SessionStore interface {
	Replace(ctx context.Context, userID int64, entries []QueueEntry, ttl time.Duration) error
	Peek(ctx context.Context, userID int64) (QueueEntry, error)
	Ack(ctx context.Context, userID, targetID int64, ttl time.Duration) error
	Len(ctx context.Context, userID int64) (int64, error)
	Seen(ctx context.Context, userID int64) ([]int64, error)
	Clear(ctx context.Context, userID int64) error
}

type Config struct {
	AgeMin        int
	AgeMax        int
	HeightMinCM   int
	HeightMaxCM   int
	MaxDistanceKM int
	BatchSize     int
	SessionTTL    time.Duration
}

type Service struct {
	profiles    ProfileStore
	preferences PreferenceStore
	sessions    SessionStore
	cfg         Config
	now         func() time.Time
}

type Dependencies struct {
	Profiles    ProfileStore
	Preferences PreferenceStore
	Sessions    SessionStore
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.AgeMin < 18 {
		cfg.AgeMin = 18
	}
	if cfg.AgeMax <= 0 {
		cfg.AgeMax = 80
	}
	if cfg.HeightMinCM <= 0 {
		cfg.HeightMinCM = 140
	}
	if cfg.HeightMaxCM <= 0 {
		cfg.HeightMaxCM = 220
	}
	if cfg.MaxDistanceKM <= 0 {
		cfg.MaxDistanceKM = 100
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	return &Service{
		profiles:    deps.Profiles,
		preferences: deps.Preferences,
		sessions:    deps.Sessions,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Preferences returns the viewer's stored preferences, or the unbounded
// defaults when none are stored yet.
func (s *Service) Preferences(ctx context.Context, userID int64) (model.Preferences, error) {
	if userID <= 0 {
		return model.Preferences{}, ErrValidation
	}

	prefs, err := s.preferences.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPreferencesNotFound) {
			return s.defaultPreferences(userID), nil
		}
		return model.Preferences{}, err
	}

	return prefs, nil
}

// UpdatePreferences normalizes and persists the viewer's preferences and
// invalidates the running session so the next card reflects them.
// Changing the state clears a stale city selection; changing the
// distance cap clears both, since a distance search and a region search
// are mutually exclusive intents.
func (s *Service) UpdatePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	if prefs.UserID <= 0 {
		return model.Preferences{}, ErrValidation
	}

	previous, err := s.Preferences(ctx, prefs.UserID)
	if err != nil {
		return model.Preferences{}, err
	}

	normalized, err := s.normalize(prefs, previous)
	if err != nil {
		return model.Preferences{}, err
	}

	if err := s.preferences.Upsert(ctx, normalized); err != nil {
		return model.Preferences{}, err
	}

	if err := s.sessions.Clear(ctx, prefs.UserID); err != nil {
		return model.Preferences{}, err
	}

	return normalized, nil
}

// Next serves the head of the ranked queue, rebuilding the session when
// it has run out. The head stays queued until the swipe on it is
// durable, so a failed decide leaves the candidate in place for retry.
// A candidate whose profile vanished between ranking and serving is
// dropped from the queue and skipped.
func (s *Service) Next(ctx context.Context, userID int64) (Card, error) {
	if userID <= 0 {
		return Card{}, ErrValidation
	}

	viewer, err := s.viewer(ctx, userID)
	if err != nil {
		return Card{}, err
	}

	rebuilt := false
	for {
		entry, err := s.sessions.Peek(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrSessionEmpty) {
				return Card{}, err
			}
			if rebuilt {
				return Card{}, ErrSessionEmpty
			}
			if err := s.rebuild(ctx, viewer); err != nil {
				return Card{}, err
			}
			rebuilt = true
			continue
		}

		profiles, err := s.profiles.GetMany(ctx, []int64{entry.UserID})
		if err != nil {
			return Card{}, err
		}
		if len(profiles) == 0 {
			if err := s.sessions.Ack(ctx, userID, entry.UserID, s.cfg.SessionTTL); err != nil {
				return Card{}, err
			}
			continue
		}

		candidate := profiles[0]
		return Card{
			Profile: candidate,
			Score:   entry.Score,
			DistanceKM: rules.DistanceKM(
				viewer.Profile.Latitude, viewer.Profile.Longitude,
				candidate.Latitude, candidate.Longitude,
			),
		}, nil
	}
}

// MarkDecided removes a decided candidate from the viewer's queue and
// records it as seen. Called after the swipe is durable, never before.
func (s *Service) MarkDecided(ctx context.Context, viewerID, targetID int64) error {
	if viewerID <= 0 || targetID <= 0 {
		return ErrValidation
	}
	return s.sessions.Ack(ctx, viewerID, targetID, s.cfg.SessionTTL)
}

// Reset drops the viewer's session queue.
func (s *Service) Reset(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrValidation
	}
	return s.sessions.Clear(ctx, userID)
}

func (s *Service) viewer(ctx context.Context, userID int64) (rules.Viewer, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return rules.Viewer{}, ErrProfileRequired
		}
		return rules.Viewer{}, err
	}

	prefs, err := s.Preferences(ctx, userID)
	if err != nil {
		return rules.Viewer{}, err
	}

	return rules.Viewer{Profile: profile, Preferences: prefs}, nil
}

func (s *Service) rebuild(ctx context.Context, viewer rules.Viewer) error {
	candidates, err := s.profiles.ListCandidates(ctx, viewer.Profile.UserID, s.cfg.BatchSize*4)
	if err != nil {
		return err
	}

	seen, err := s.sessions.Seen(ctx, viewer.Profile.UserID)
	if err != nil {
		return err
	}
	seenSet := make(map[int64]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	entries := make([]QueueEntry, 0, s.cfg.BatchSize)
	for _, candidate := range candidates {
		if _, ok := seenSet[candidate.UserID]; ok {
			continue
		}

		distance := rules.DistanceKM(
			viewer.Profile.Latitude, viewer.Profile.Longitude,
			candidate.Latitude, candidate.Longitude,
		)
		if !rules.Eligible(candidate, viewer, distance) {
			continue
		}

		entries = append(entries, QueueEntry{
			UserID: candidate.UserID,
			Score:  rules.CompatibilityScore(candidate, viewer),
		})
		if len(entries) >= s.cfg.BatchSize {
			break
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	return s.sessions.Replace(ctx, viewer.Profile.UserID, entries, s.cfg.SessionTTL)
}

func (s *Service) normalize(prefs, previous model.Preferences) (model.Preferences, error) {
	if prefs.AgeMin < 18 {
		return model.Preferences{}, fmt.Errorf("%w: minimum age is 18", ErrValidation)
	}
	if prefs.AgeMax < prefs.AgeMin {
		return model.Preferences{}, fmt.Errorf("%w: age range is inverted", ErrValidation)
	}
	if prefs.HeightMinCM > 0 && prefs.HeightMaxCM > 0 && prefs.HeightMaxCM < prefs.HeightMinCM {
		return model.Preferences{}, fmt.Errorf("%w: height range is inverted", ErrValidation)
	}
	if prefs.MaxDistanceKM <= 0 {
		prefs.MaxDistanceKM = s.cfg.MaxDistanceKM
	}
	if prefs.HeightMinCM <= 0 {
		prefs.HeightMinCM = s.cfg.HeightMinCM
	}
	if prefs.HeightMaxCM <= 0 {
		prefs.HeightMaxCM = s.cfg.HeightMaxCM
	}
	if prefs.SearchGender != "" && !prefs.SearchGender.Valid() {
		return model.Preferences{}, fmt.Errorf("%w: unknown search gender", ErrValidation)
	}

	prefs.Goals = rules.CollapseMultiSelect(prefs.Goals)
	prefs.BodyTypes = rules.CollapseMultiSelect(prefs.BodyTypes)
	prefs.Smoking = rules.CollapseMultiSelect(prefs.Smoking)
	prefs.Drinking = rules.CollapseMultiSelect(prefs.Drinking)
	prefs.Zodiacs = rules.CollapseMultiSelect(prefs.Zodiacs)
	prefs.Religions = rules.CollapseMultiSelect(prefs.Religions)

	if prefs.Pets == "" {
		prefs.Pets = enums.TriStateIndifferent
	}
	if prefs.Accessibility == "" {
		prefs.Accessibility = enums.TriStateIndifferent
	}
	if !prefs.Pets.Valid() || !prefs.Accessibility.Valid() {
		return model.Preferences{}, fmt.Errorf("%w: unknown tri-state value", ErrValidation)
	}

	prefs.State = strings.TrimSpace(prefs.State)
	prefs.City = strings.TrimSpace(prefs.City)
	prefs.NameQuery = strings.TrimSpace(prefs.NameQuery)

	// Values identical to the previous selection are carry-overs from
	// the client form; a changed state or distance cap invalidates them.
	if !strings.EqualFold(prefs.State, previous.State) && strings.EqualFold(prefs.City, previous.City) {
		prefs.City = ""
	}
	if prefs.MaxDistanceKM != previous.MaxDistanceKM && previous.MaxDistanceKM != 0 {
		if strings.EqualFold(prefs.State, previous.State) {
			prefs.State = ""
		}
		if strings.EqualFold(prefs.City, previous.City) {
			prefs.City = ""
		}
	}

	return prefs, nil
}

func (s *Service) defaultPreferences(userID int64) model.Preferences {
	wildcard := []string{enums.Indifferent}
	return model.Preferences{
		UserID:                   userID,
		AgeMin:                   s.cfg.AgeMin,
		AgeMax:                   s.cfg.AgeMax,
		HeightMinCM:              s.cfg.HeightMinCM,
		HeightMaxCM:              s.cfg.HeightMaxCM,
		MaxDistanceKM:            s.cfg.MaxDistanceKM,
		Goals:                    wildcard,
		BodyTypes:                append([]string(nil), wildcard...),
		Smoking:                  append([]string(nil), wildcard...),
		Drinking:                 append([]string(nil), wildcard...),
		Zodiacs:                  append([]string(nil), wildcard...),
		Religions:                append([]string(nil), wildcard...),
		Pets:                     enums.TriStateIndifferent,
		Accessibility:            enums.TriStateIndifferent,
		EnableMessageSuggestions: true,
	}
}

// DistanceForDisplay rounds a distance for presentation; unbounded
// distances have no displayable value.
func DistanceForDisplay(distanceKM float64) (int, bool) {
	if math.IsInf(distanceKM, 1) {
		return 0, false
	}
	return int(math.Round(distanceKM)), true
}
