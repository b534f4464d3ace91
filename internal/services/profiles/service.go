package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/rules"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

const (
	minAge          = 18
	maxDisplayName  = 50
	maxTagline      = 120
	maxBio          = 2000
	maxInterests    = 20
	maxPhotoEntries = 10
)

type Store interface {
	Get(ctx context.Context, userID int64) (model.Profile, error)
	Upsert(ctx context.Context, p model.Profile) error
}

type LikeCounter interface {
	CountIncomingLikes(ctx context.Context, userID int64) (int, error)
}

type TextModerator interface {
	CheckText(ctx context.Context, text string) error
}

// View is a profile enriched with derived presentation fields.
type View struct {
	model.Profile
}

type Service struct {
	store     Store
	likes     LikeCounter
	moderator TextModerator
	now       func() time.Time
}

type Dependencies struct {
	Store     Store
	Likes     LikeCounter
	Moderator TextModerator
}

func NewService(deps Dependencies) *Service {
	return &Service{
		store:     deps.Store,
		likes:     deps.Likes,
		moderator: deps.Moderator,
		now:       time.Now,
	}
}

// Get returns the profile with the incoming like counter filled in when
// the owner exposes it.
func (s *Service) Get(ctx context.Context, userID int64) (View, error) {
	if userID <= 0 {
		return View{}, ErrValidation
	}

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}

	if profile.ShowLikeCount && s.likes != nil {
		count, err := s.likes.CountIncomingLikes(ctx, userID)
		if err != nil {
			return View{}, fmt.Errorf("count incoming likes: %w", err)
		}
		profile.LikeCount = count
	}

	return View{Profile: profile}, nil
}

// Save validates, moderates and persists a profile. Free-text fields go
// through the text safety gate before anything is written.
func (s *Service) Save(ctx context.Context, p model.Profile) (model.Profile, error) {
	if p.UserID <= 0 {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil || s.moderator == nil {
		return model.Profile{}, fmt.Errorf("profile dependencies are not configured")
	}

	normalized, err := normalize(p)
	if err != nil {
		return model.Profile{}, err
	}

	for _, text := range []string{normalized.DisplayName, normalized.Tagline, normalized.Bio} {
		if err := s.moderator.CheckText(ctx, text); err != nil {
			return model.Profile{}, err
		}
	}

	if err := s.store.Upsert(ctx, normalized); err != nil {
		return model.Profile{}, err
	}

	return normalized, nil
}

func normalize(p model.Profile) (model.Profile, error) {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Tagline = strings.TrimSpace(p.Tagline)
	p.Bio = strings.TrimSpace(p.Bio)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.TrimSpace(p.State)
	p.Religion = strings.ToLower(strings.TrimSpace(p.Religion))
	p.Zodiac = strings.ToLower(strings.TrimSpace(p.Zodiac))

	if p.DisplayName == "" || len(p.DisplayName) > maxDisplayName {
		return model.Profile{}, fmt.Errorf("%w: display name", ErrValidation)
	}
	if p.Age < minAge {
		return model.Profile{}, fmt.Errorf("%w: minimum age is %d", ErrValidation, minAge)
	}
	if len(p.Tagline) > maxTagline {
		return model.Profile{}, fmt.Errorf("%w: tagline too long", ErrValidation)
	}
	if len(p.Bio) > maxBio {
		return model.Profile{}, fmt.Errorf("%w: bio too long", ErrValidation)
	}
	if !p.Gender.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown gender", ErrValidation)
	}
	if !p.Orientation.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown orientation", ErrValidation)
	}
	if p.RelationshipGoal != "" && !p.RelationshipGoal.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown relationship goal", ErrValidation)
	}
	if p.BodyType != "" && !p.BodyType.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown body type", ErrValidation)
	}
	if p.Smoking != "" && !p.Smoking.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown smoking value", ErrValidation)
	}
	if p.Drinking != "" && !p.Drinking.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown drinking value", ErrValidation)
	}
	if p.Accessibility != "" && !p.Accessibility.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown accessibility value", ErrValidation)
	}
	if !rules.ValidZodiac(p.Zodiac) {
		return model.Profile{}, fmt.Errorf("%w: unknown zodiac sign", ErrValidation)
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return model.Profile{}, fmt.Errorf("%w: partial coordinates", ErrValidation)
	}
	if len(p.PhotoURLs) > maxPhotoEntries {
		return model.Profile{}, fmt.Errorf("%w: too many photos", ErrValidation)
	}
	if len(p.Interests) > maxInterests {
		return model.Profile{}, fmt.Errorf("%w: too many interests", ErrValidation)
	}

	interests := make([]string, 0, len(p.Interests))
	seen := make(map[string]struct{}, len(p.Interests))
	for _, interest := range p.Interests {
		normalized := strings.ToLower(strings.TrimSpace(interest))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		interests = append(interests, normalized)
	}
	p.Interests = interests

	if p.Accessibility == "" {
		p.Accessibility = enums.AccessibilityPrivate
	}

	return p, nil
}
