package model

import (
	"time"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
)

type Message struct {
	ID       int64 `json:"id"`
	MatchID  int64 `json:"match_id"`
	SenderID int64 `json:"sender_id"`

	Text     string `json:"text,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	Type      enums.MessageType `json:"type"`
	CreatedAt time.Time         `json:"created_at"`
}

// HasPayload reports whether at least one content field is set. User
// messages require a payload; system messages always carry text.
func (m Message) HasPayload() bool {
	return m.Text != "" || m.AudioURL != "" || m.ImageURL != ""
}
