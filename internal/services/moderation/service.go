package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrTextRejected  = errors.New("text rejected by moderation")
	ErrImageRejected = errors.New("image rejected by moderation")
	ErrUnavailable   = errors.New("moderation unavailable")
)

const (
	verdictSafe      = "SAFE"
	verdictOffensive = "OFFENSIVE"
	verdictUnsafe    = "UNSAFE"

	maxTextLength = 4000
)

const textPrompt = `You are a content moderator for a dating application.
Classify the following user-submitted text. Answer with exactly one word:
OFFENSIVE if it contains hate speech, harassment, sexual solicitation,
violence, or contact information used for scams; SAFE otherwise.

Text:
%s`

const imagePrompt = `You are a content moderator for a dating application.
Classify the attached profile photo. Answer with exactly one word:
UNSAFE if it contains nudity, sexually explicit content, violence or gore;
SAFE otherwise.`

type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt, format string, data []byte) (string, error)
}

type Config struct {
	// FailOpen publishes content unchecked when the classifier cannot
	// be reached. Off by default: an outage blocks publication.
	FailOpen bool
}

type Service struct {
	generator Generator
	cfg       Config
}

func NewService(generator Generator, cfg Config) *Service {
	return &Service{generator: generator, cfg: cfg}
}

// CheckText returns nil when the text may be published.
func (s *Service) CheckText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) > maxTextLength {
		return ErrValidation
	}
	if s.generator == nil {
		return s.unavailable(nil)
	}

	verdict, err := s.generator.GenerateText(ctx, fmt.Sprintf(textPrompt, text))
	if err != nil {
		return s.unavailable(err)
	}

	if strings.Contains(strings.ToUpper(verdict), verdictOffensive) {
		return ErrTextRejected
	}
	return nil
}

// CheckImage returns nil when the photo may be published. The format is
// the image subtype, e.g. "jpeg".
func (s *Service) CheckImage(ctx context.Context, format string, data []byte) error {
	if len(data) == 0 {
		return ErrValidation
	}
	if s.generator == nil {
		return s.unavailable(nil)
	}

	verdict, err := s.generator.GenerateWithImage(ctx, imagePrompt, format, data)
	if err != nil {
		return s.unavailable(err)
	}

	if strings.Contains(strings.ToUpper(verdict), verdictUnsafe) {
		return ErrImageRejected
	}
	return nil
}

func (s *Service) unavailable(err error) error {
	if s.cfg.FailOpen {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ErrUnavailable
}
