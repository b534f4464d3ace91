package dto

import "time"

type MessageResponse struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text,omitempty"`
	AudioURL  string    `json:"audio_url,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Items []MessageResponse `json:"items"`
}

type SendMessageRequest struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url"`
	ImageURL string `json:"image_url"`
}

type SuggestionResponse struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

type SuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}
