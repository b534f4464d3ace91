package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
)

// stubTx satisfies pgx.Tx for stores that never touch the connection.
type stubTx struct {
	pgx.Tx
}

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

type stubBeginner struct{}

func (stubBeginner) Begin(context.Context) (pgx.Tx, error) { return stubTx{}, nil }

type matchResolverStub struct {
	match model.Match
	err   error
}

func (s *matchResolverStub) Resolve(_ context.Context, _, _ int64) (model.Match, error) {
	return s.match, s.err
}

type messageStoreStub struct {
	inserted []model.Message
	listed   []model.Message
	hasType  bool
	err      error
}

func (s *messageStoreStub) Insert(_ context.Context, m model.Message, now time.Time) (model.Message, error) {
	if s.err != nil {
		return model.Message{}, s.err
	}
	m.ID = int64(len(s.inserted) + 1)
	m.CreatedAt = now
	s.inserted = append(s.inserted, m)
	return m, nil
}

func (s *messageStoreStub) InsertUniqueType(_ context.Context, _ pgx.Tx, m model.Message, now time.Time) (model.Message, bool, error) {
	for _, existing := range s.inserted {
		if existing.MatchID == m.MatchID && existing.Type == m.Type {
			return existing, false, nil
		}
	}
	m.ID = int64(len(s.inserted) + 1)
	m.CreatedAt = now
	s.inserted = append(s.inserted, m)
	return m, true, nil
}

func (s *messageStoreStub) ListByMatch(_ context.Context, _ int64, _ int) ([]model.Message, error) {
	if len(s.listed) > 0 {
		return s.listed, nil
	}
	return s.inserted, nil
}

func (s *messageStoreStub) HasType(_ context.Context, _ int64, _ string) (bool, error) {
	return s.hasType, nil
}

type chatProfileStoreStub struct {
	profiles []model.Profile
}

func (s *chatProfileStoreStub) GetMany(_ context.Context, _ []int64) ([]model.Profile, error) {
	return s.profiles, nil
}

type moderatorStub struct {
	err error
}

func (s *moderatorStub) CheckText(_ context.Context, _ string) error {
	return s.err
}

type generatorStub struct {
	text   string
	err    error
	prompt string
}

func (s *generatorStub) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

type preferenceSourceStub struct {
	prefs model.Preferences
	err   error
}

func (s *preferenceSourceStub) Preferences(_ context.Context, _ int64) (model.Preferences, error) {
	return s.prefs, s.err
}

func chatTestService(messages *messageStoreStub, moderator TextModerator, gen Generator, prefs PreferenceSource) *Service {
	svc := NewService(Dependencies{
		Pool:    stubBeginner{},
		Matches: &matchResolverStub{match: model.Match{ID: 7, UserAID: 1, UserBID: 2}},
		Messages: messages,
		Profiles: &chatProfileStoreStub{profiles: []model.Profile{
			{UserID: 1, DisplayName: "Ana", Interests: []string{"cinema"}},
			{UserID: 2, DisplayName: "Bia", Interests: []string{"trilhas"}},
		}},
		Moderator:   moderator,
		Generator:   gen,
		Preferences: prefs,
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestOpenSeedsGreetingOnce(t *testing.T) {
	store := &messageStoreStub{}
	svc := chatTestService(store, nil, nil, nil)
	ctx := context.Background()

	first, err := svc.Open(ctx, 1, 7)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first open must seed the greeting, got %d messages", len(first))
	}
	greeting := first[0]
	if greeting.SenderID != enums.SystemSenderID || greeting.Type != enums.MessageTypeSystem {
		t.Fatalf("greeting must come from the system, got %+v", greeting)
	}
	if greeting.Text != greetingText {
		t.Fatalf("unexpected greeting text: %q", greeting.Text)
	}

	second, err := svc.Open(ctx, 2, 7)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("reopening must not seed a second greeting, got %d messages", len(second))
	}
}

func TestSendRejectsEmptyPayload(t *testing.T) {
	svc := chatTestService(&messageStoreStub{}, &moderatorStub{}, nil, nil)

	if _, err := svc.Send(context.Background(), 1, 7, "   ", "", ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendRejectsOverlongText(t *testing.T) {
	svc := chatTestService(&messageStoreStub{}, &moderatorStub{}, nil, nil)

	long := strings.Repeat("a", maxMessageLength+1)
	if _, err := svc.Send(context.Background(), 1, 7, long, "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSendPropagatesModerationRejection(t *testing.T) {
	rejected := errors.New("text rejected")
	svc := chatTestService(&messageStoreStub{}, &moderatorStub{err: rejected}, nil, nil)

	if _, err := svc.Send(context.Background(), 1, 7, "oi", "", ""); !errors.Is(err, rejected) {
		t.Fatalf("expected moderation error, got %v", err)
	}
}

func TestSendSkipsModerationForMediaOnlyMessages(t *testing.T) {
	store := &messageStoreStub{}
	svc := chatTestService(store, &moderatorStub{err: errors.New("should not be called")}, nil, nil)

	msg, err := svc.Send(context.Background(), 1, 7, "", "https://cdn/audio.ogg", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Type != enums.MessageTypeUser || msg.AudioURL == "" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one stored message, got %d", len(store.inserted))
	}
}

func TestSendStampsSenderAndMatch(t *testing.T) {
	store := &messageStoreStub{}
	svc := chatTestService(store, &moderatorStub{}, nil, nil)

	msg, err := svc.Send(context.Background(), 2, 7, "  oi, tudo bem?  ", "", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.MatchID != 7 || msg.SenderID != 2 || msg.Text != "oi, tudo bem?" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestAnalyzeReturnsStoredNoteWithoutRegenerating(t *testing.T) {
	stored := model.Message{ID: 3, MatchID: 7, SenderID: enums.SystemSenderID, Text: "nota existente", Type: enums.MessageTypeAIAnalysis}
	store := &messageStoreStub{hasType: true, listed: []model.Message{
		{ID: 1, MatchID: 7, Type: enums.MessageTypeSystem, Text: "oi"},
		stored,
	}}
	svc := chatTestService(store, nil, &generatorStub{err: errors.New("generator must not run")}, nil)

	msg, err := svc.Analyze(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if msg.ID != stored.ID || msg.Text != stored.Text {
		t.Fatalf("expected stored note, got %+v", msg)
	}
}

func TestSuggestionsHonorsPreferenceToggle(t *testing.T) {
	svc := chatTestService(&messageStoreStub{}, nil, &generatorStub{}, &preferenceSourceStub{
		prefs: model.Preferences{EnableMessageSuggestions: false},
	})

	if _, err := svc.Suggestions(context.Background(), 1, 7); !errors.Is(err, ErrSuggestionsDisabled) {
		t.Fatalf("expected ErrSuggestionsDisabled, got %v", err)
	}
}

func TestSuggestionsParsesGeneratedJSON(t *testing.T) {
	gen := &generatorStub{
		text: "```json\n[{\"topic\":\"Cinema\",\"message\":\"Oi Bia!\"},{\"topic\":\"Trilhas\",\"message\":\"Curte trilhas?\"},{\"topic\":\"extra\",\"message\":\"terceira ignorada\"}]\n```",
	}
	svc := chatTestService(&messageStoreStub{}, nil, gen, &preferenceSourceStub{
		prefs: model.Preferences{EnableMessageSuggestions: true},
	})

	got, err := svc.Suggestions(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 suggestions, got %v", got)
	}
	if got[0].Message != "Oi Bia!" || got[0].Topic != "Cinema" {
		t.Fatalf("unexpected first suggestion: %+v", got[0])
	}
	if got[1].Message != "Curte trilhas?" {
		t.Fatalf("unexpected second suggestion: %+v", got[1])
	}
}

func TestSuggestionsFeedsRecentHistoryToGenerator(t *testing.T) {
	store := &messageStoreStub{listed: []model.Message{
		{ID: 1, MatchID: 7, SenderID: enums.SystemSenderID, Type: enums.MessageTypeSystem, Text: "match!"},
		{ID: 2, MatchID: 7, SenderID: 1, Type: enums.MessageTypeUser, Text: "Oi, tudo bem?"},
		{ID: 3, MatchID: 7, SenderID: 2, Type: enums.MessageTypeUser, Text: "Tudo ótimo, e você?"},
	}}
	gen := &generatorStub{text: `[{"topic":"a","message":"b"},{"topic":"c","message":"d"}]`}
	svc := chatTestService(store, nil, gen, &preferenceSourceStub{
		prefs: model.Preferences{EnableMessageSuggestions: true},
	})

	if _, err := svc.Suggestions(context.Background(), 1, 7); err != nil {
		t.Fatalf("Suggestions: %v", err)
	}

	if !strings.Contains(gen.prompt, "Ana: Oi, tudo bem?") {
		t.Fatalf("prompt must carry the sender's recent message, got:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "Bia: Tudo ótimo, e você?") {
		t.Fatalf("prompt must carry the counterpart's recent message, got:\n%s", gen.prompt)
	}
	if strings.Contains(gen.prompt, "match!") {
		t.Fatalf("system messages must stay out of the prompt, got:\n%s", gen.prompt)
	}
}

func TestSuggestionsPadsSingleGeneratedDraft(t *testing.T) {
	gen := &generatorStub{text: `[{"topic":"Viagem","message":"Qual foi sua melhor viagem?"}]`}
	svc := chatTestService(&messageStoreStub{}, nil, gen, &preferenceSourceStub{
		prefs: model.Preferences{EnableMessageSuggestions: true},
	})

	got, err := svc.Suggestions(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("a short generation must be padded to 2, got %v", got)
	}
	if got[0].Message != "Qual foi sua melhor viagem?" {
		t.Fatalf("generated draft must come first, got %+v", got[0])
	}
	if got[1] != fallbackSuggestions[0] {
		t.Fatalf("pad must use the canned draft, got %+v", got[1])
	}
}

func TestSuggestionsFallsBackOnGeneratorFailure(t *testing.T) {
	cases := []struct {
		name string
		gen  *generatorStub
	}{
		{"generator error", &generatorStub{err: errors.New("quota exceeded")}},
		{"malformed output", &generatorStub{text: "desculpe, não consigo"}},
		{"empty messages", &generatorStub{text: `[{"topic":"a","message":""},{"topic":"b","message":"  "}]`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := chatTestService(&messageStoreStub{}, nil, tc.gen, &preferenceSourceStub{
				prefs: model.Preferences{EnableMessageSuggestions: true},
			})

			got, err := svc.Suggestions(context.Background(), 1, 7)
			if err != nil {
				t.Fatalf("Suggestions: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected exactly 2 fallback suggestions, got %v", got)
			}
			if got[0] != fallbackSuggestions[0] || got[1] != fallbackSuggestions[1] {
				t.Fatalf("expected the canned pair, got %v", got)
			}
		})
	}
}

func TestSuggestionsRequiresMembership(t *testing.T) {
	forbidden := errors.New("not a member")
	svc := NewService(Dependencies{
		Matches:  &matchResolverStub{err: forbidden},
		Messages: &messageStoreStub{},
	})

	if _, err := svc.Suggestions(context.Background(), 9, 7); !errors.Is(err, forbidden) {
		t.Fatalf("expected membership error, got %v", err)
	}
}
