package dto

import "time"

type SwipeRequest struct {
	TargetID int64  `json:"target_id"`
	Action   string `json:"action"`
	// RewardToken attests the rewarded-ad view that unlocks a superlike.
	RewardToken string `json:"reward_token,omitempty"`
}

type SwipeResponse struct {
	OK             bool             `json:"ok"`
	Recorded       bool             `json:"recorded"`
	MatchCreated   bool             `json:"match_created"`
	Match          *MatchResponse   `json:"match,omitempty"`
	MatchedProfile *ProfileResponse `json:"matched_profile,omitempty"`
}

type MatchResponse struct {
	ID        int64     `json:"id"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}
