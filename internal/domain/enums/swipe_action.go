package enums

type SwipeAction string

const (
	SwipeActionLike      SwipeAction = "LIKE"
	SwipeActionSuperLike SwipeAction = "SUPERLIKE"
	SwipeActionDislike   SwipeAction = "DISLIKE"
)

func (a SwipeAction) Valid() bool {
	switch a {
	case SwipeActionLike, SwipeActionSuperLike, SwipeActionDislike:
		return true
	default:
		return false
	}
}

// IsLike reports whether the action counts as a like for match purposes.
// A superlike is a like with an extra client-side gate.
func (a SwipeAction) IsLike() bool {
	return a == SwipeActionLike || a == SwipeActionSuperLike
}
