package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrEmptyMessage        = errors.New("message has no payload")
	ErrSuggestionsDisabled = errors.New("message suggestions are disabled")
)

const (
	maxMessageLength   = 2000
	recentHistoryLimit = 10
	greetingText       = "Vocês deram match! Quebre o gelo e diga oi."
)

const analysisPrompt = `You are a warm, encouraging dating coach.
Two people just matched on a dating app. Write a short compatibility
note (2-3 sentences) highlighting what they have in common and one
interesting contrast. Write in Brazilian Portuguese, address both
people, no emoji.

Person A: %s
Person B: %s`

const suggestionsPrompt = `You are helping someone keep a conversation
going on a dating app. Based on both profiles and the conversation so
far, write exactly 2 distinct short messages the first person could
send next. Write in Brazilian Portuguese. Output a JSON array of 2
objects with keys "topic" and "message" and nothing else.

Sender: %s
Recipient: %s
Conversation so far:
%s`

var fallbackAnalysis = "Vocês dois têm muito em comum e esse match é uma ótima oportunidade de se conhecerem melhor. Aproveitem a conversa!"

var fallbackSuggestions = [2]Suggestion{
	{Topic: "Quebra-gelo", Message: "Oi! Adorei seu perfil, o que você anda fazendo de bom ultimamente?"},
	{Topic: "Interesses", Message: "Olá! Vi que temos interesses parecidos, qual deles é o seu favorito?"},
}

// Suggestion is one proposed message with the topic it opens.
type Suggestion struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

type MatchResolver interface {
	Resolve(ctx context.Context, userID, matchID int64) (model.Match, error)
}

type MessageStore interface {
	Insert(ctx context.Context, m model.Message, now time.Time) (model.Message, error)
	InsertUniqueType(ctx context.Context, tx pgx.Tx, m model.Message, now time.Time) (model.Message, bool, error)
	ListByMatch(ctx context.Context, matchID int64, limit int) ([]model.Message, error)
	HasType(ctx context.Context, matchID int64, msgType string) (bool, error)
}

type ProfileStore interface {
	GetMany(ctx context.Context, userIDs []int64) ([]model.Profile, error)
}

type TextModerator interface {
	CheckText(ctx context.Context, text string) error
}

type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type PreferenceSource interface {
	Preferences(ctx context.Context, userID int64) (model.Preferences, error)
}

type Service struct {
	db          pgrepo.TxBeginner
	matches     MatchResolver
	messages    MessageStore
	profiles    ProfileStore
	moderator   TextModerator
	generator   Generator
	preferences PreferenceSource
	now         func() time.Time
}

type Dependencies struct {
	Pool        pgrepo.TxBeginner
	Matches     MatchResolver
	Messages    MessageStore
	Profiles    ProfileStore
	Moderator   TextModerator
	Generator   Generator
	Preferences PreferenceSource
}

func NewService(deps Dependencies) *Service {
	return &Service{
		db:          deps.Pool,
		matches:     deps.Matches,
		messages:    deps.Messages,
		profiles:    deps.Profiles,
		moderator:   deps.Moderator,
		generator:   deps.Generator,
		preferences: deps.Preferences,
		now:         time.Now,
	}
}

// Open returns the conversation, seeding the system greeting the first
// time either member opens it. The unique-type insert makes concurrent
// first opens produce a single greeting.
func (s *Service) Open(ctx context.Context, userID, matchID int64) ([]model.Message, error) {
	match, err := s.matches.Resolve(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	if err := pgrepo.WithTx(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		_, _, err := s.messages.InsertUniqueType(txCtx, tx, model.Message{
			MatchID:  match.ID,
			SenderID: enums.SystemSenderID,
			Text:     greetingText,
			Type:     enums.MessageTypeSystem,
		}, s.now().UTC())
		return err
	}); err != nil {
		return nil, err
	}

	return s.messages.ListByMatch(ctx, match.ID, 0)
}

// Send posts a user message after membership and the text gate pass.
func (s *Service) Send(ctx context.Context, userID, matchID int64, text, audioURL, imageURL string) (model.Message, error) {
	match, err := s.matches.Resolve(ctx, userID, matchID)
	if err != nil {
		return model.Message{}, err
	}

	msg := model.Message{
		MatchID:  match.ID,
		SenderID: userID,
		Text:     strings.TrimSpace(text),
		AudioURL: strings.TrimSpace(audioURL),
		ImageURL: strings.TrimSpace(imageURL),
		Type:     enums.MessageTypeUser,
	}
	if !msg.HasPayload() {
		return model.Message{}, ErrEmptyMessage
	}
	if len(msg.Text) > maxMessageLength {
		return model.Message{}, ErrValidation
	}

	if msg.Text != "" && s.moderator != nil {
		if err := s.moderator.CheckText(ctx, msg.Text); err != nil {
			return model.Message{}, err
		}
	}

	return s.messages.Insert(ctx, msg, s.now().UTC())
}

// Analyze produces the one-shot compatibility note for a match. The
// first successful call stores it; later calls return the stored note.
// A generation failure falls back to a canned note rather than leaving
// the conversation without one.
func (s *Service) Analyze(ctx context.Context, userID, matchID int64) (model.Message, error) {
	match, err := s.matches.Resolve(ctx, userID, matchID)
	if err != nil {
		return model.Message{}, err
	}

	if existing, found, err := s.findByType(ctx, match.ID, enums.MessageTypeAIAnalysis); err != nil {
		return model.Message{}, err
	} else if found {
		return existing, nil
	}

	a, b, err := s.matchProfiles(ctx, match)
	if err != nil {
		return model.Message{}, err
	}

	text := fallbackAnalysis
	if s.generator != nil {
		generated, err := s.generator.GenerateText(ctx, fmt.Sprintf(analysisPrompt, describeProfile(a), describeProfile(b)))
		if err == nil && strings.TrimSpace(generated) != "" {
			text = strings.TrimSpace(generated)
		}
	}

	var stored model.Message
	if err := pgrepo.WithTx(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		msg, created, err := s.messages.InsertUniqueType(txCtx, tx, model.Message{
			MatchID:  match.ID,
			SenderID: enums.SystemSenderID,
			Text:     text,
			Type:     enums.MessageTypeAIAnalysis,
		}, s.now().UTC())
		if err != nil {
			return err
		}
		if created {
			stored = msg
		}
		return nil
	}); err != nil {
		return model.Message{}, err
	}

	if stored.ID != 0 {
		return stored, nil
	}

	// Lost the race: another member stored the analysis first.
	existing, _, err := s.findByType(ctx, match.ID, enums.MessageTypeAIAnalysis)
	return existing, err
}

// Suggestions returns exactly two message drafts for the viewer, fed
// with the recent conversation so they work mid-chat as well as for
// openers. The feature honors the viewer's preference toggle, and a
// short generation is padded with canned drafts up to the pair.
func (s *Service) Suggestions(ctx context.Context, userID, matchID int64) ([]Suggestion, error) {
	match, err := s.matches.Resolve(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	if s.preferences != nil {
		prefs, err := s.preferences.Preferences(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !prefs.EnableMessageSuggestions {
			return nil, ErrSuggestionsDisabled
		}
	}

	a, b, err := s.matchProfiles(ctx, match)
	if err != nil {
		return nil, err
	}
	sender, recipient := a, b
	if b.UserID == userID {
		sender, recipient = b, a
	}

	history, err := s.messages.ListByMatch(ctx, match.ID, 0)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	if s.generator != nil {
		prompt := fmt.Sprintf(suggestionsPrompt,
			describeProfile(sender),
			describeProfile(recipient),
			describeHistory(history, sender, recipient),
		)
		raw, err := s.generator.GenerateText(ctx, prompt)
		if err == nil {
			suggestions = parseSuggestions(raw)
		}
	}

	for _, fb := range fallbackSuggestions {
		if len(suggestions) >= 2 {
			break
		}
		suggestions = append(suggestions, fb)
	}

	return suggestions[:2], nil
}

func (s *Service) findByType(ctx context.Context, matchID int64, msgType enums.MessageType) (model.Message, bool, error) {
	has, err := s.messages.HasType(ctx, matchID, string(msgType))
	if err != nil || !has {
		return model.Message{}, false, err
	}

	all, err := s.messages.ListByMatch(ctx, matchID, 0)
	if err != nil {
		return model.Message{}, false, err
	}
	for _, m := range all {
		if m.Type == msgType {
			return m, true, nil
		}
	}
	return model.Message{}, false, nil
}

func (s *Service) matchProfiles(ctx context.Context, match model.Match) (model.Profile, model.Profile, error) {
	profiles, err := s.profiles.GetMany(ctx, []int64{match.UserAID, match.UserBID})
	if err != nil {
		return model.Profile{}, model.Profile{}, err
	}
	if len(profiles) != 2 {
		return model.Profile{}, model.Profile{}, fmt.Errorf("match members are missing profiles")
	}

	a, b := profiles[0], profiles[1]
	if a.UserID != match.UserAID {
		a, b = b, a
	}
	return a, b, nil
}

func describeProfile(p model.Profile) string {
	parts := []string{p.DisplayName}
	if len(p.Interests) > 0 {
		parts = append(parts, "interesses: "+strings.Join(p.Interests, ", "))
	}
	if p.Tagline != "" {
		parts = append(parts, p.Tagline)
	}
	if p.Bio != "" {
		parts = append(parts, p.Bio)
	}
	return strings.Join(parts, "; ")
}

// describeHistory renders the last user messages for the prompt. Media
// and system entries carry no text worth feeding the generator.
func describeHistory(history []model.Message, sender, recipient model.Profile) string {
	lines := make([]string, 0, recentHistoryLimit)
	start := 0
	if len(history) > recentHistoryLimit {
		start = len(history) - recentHistoryLimit
	}
	for _, m := range history[start:] {
		if m.Type != enums.MessageTypeUser || strings.TrimSpace(m.Text) == "" {
			continue
		}
		name := sender.DisplayName
		if m.SenderID == recipient.UserID {
			name = recipient.DisplayName
		}
		lines = append(lines, name+": "+strings.TrimSpace(m.Text))
	}
	if len(lines) == 0 {
		return "(sem mensagens ainda)"
	}
	return strings.Join(lines, "\n")
}

// parseSuggestions extracts up to two usable drafts; the caller pads
// short results with the canned pair.
func parseSuggestions(raw string) []Suggestion {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var items []Suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &items); err != nil {
		return nil
	}

	out := make([]Suggestion, 0, 2)
	for _, item := range items {
		item.Topic = strings.TrimSpace(item.Topic)
		item.Message = strings.TrimSpace(item.Message)
		if item.Message == "" {
			continue
		}
		out = append(out, item)
		if len(out) == 2 {
			break
		}
	}
	return out
}
