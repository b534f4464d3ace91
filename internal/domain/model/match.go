package model

import "time"

// Match is an unordered mutually-liked pair, stored canonically with
// UserAID < UserBID so the unique index rejects duplicates.
type Match struct {
	ID        int64     `json:"id"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Counterpart returns the other member of the pair, or 0 when userID is
// not a member.
func (m Match) Counterpart(userID int64) int64 {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	default:
		return 0
	}
}
