package dto

import "time"

type MatchItemResponse struct {
	ID          int64           `json:"id"`
	Counterpart ProfileResponse `json:"counterpart"`
	CreatedAt   time.Time       `json:"created_at"`
}

type MatchesResponse struct {
	Items []MatchItemResponse `json:"items"`
}

type UnmatchRequest struct {
	MatchID int64 `json:"match_id"`
}

type BlockRequest struct {
	TargetID int64  `json:"target_id"`
	Reason   string `json:"reason"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
