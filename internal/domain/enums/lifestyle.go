package enums

// Sentinel values shared across categorical profile and preference fields.
// PreferNotToSay is a profile-side privacy value and is exempted from
// categorical preference checks; Indifferent is a preference-side wildcard.
const (
	PreferNotToSay = "prefer_not_to_say"
	Indifferent    = "indifferent"
)

type BodyType string

const (
	BodyTypeAthletic BodyType = "athletic"
	BodyTypeAverage  BodyType = "average"
	BodyTypeHeavy    BodyType = "heavy"
	BodyTypePrivate  BodyType = BodyType(PreferNotToSay)
)

func (b BodyType) Valid() bool {
	switch b {
	case BodyTypeAthletic, BodyTypeAverage, BodyTypeHeavy, BodyTypePrivate:
		return true
	default:
		return false
	}
}

type Smoking string

const (
	SmokingNo       Smoking = "no"
	SmokingSocially Smoking = "socially"
	SmokingYes      Smoking = "yes"
	SmokingPrivate  Smoking = Smoking(PreferNotToSay)
)

func (s Smoking) Valid() bool {
	switch s {
	case SmokingNo, SmokingSocially, SmokingYes, SmokingPrivate:
		return true
	default:
		return false
	}
}

type Drinking string

const (
	DrinkingNever    Drinking = "never"
	DrinkingSocially Drinking = "socially"
	DrinkingOften    Drinking = "often"
	DrinkingPrivate  Drinking = Drinking(PreferNotToSay)
)

func (d Drinking) Valid() bool {
	switch d {
	case DrinkingNever, DrinkingSocially, DrinkingOften, DrinkingPrivate:
		return true
	default:
		return false
	}
}

type RelationshipGoal string

const (
	GoalSerious    RelationshipGoal = "serious"
	GoalCasual     RelationshipGoal = "casual"
	GoalFriendship RelationshipGoal = "friendship"
	GoalUnsure     RelationshipGoal = "unsure"
)

func (g RelationshipGoal) Valid() bool {
	switch g {
	case GoalSerious, GoalCasual, GoalFriendship, GoalUnsure:
		return true
	default:
		return false
	}
}

// Accessibility is the profile-side disability/accessibility field.
type Accessibility string

const (
	AccessibilityYes     Accessibility = "yes"
	AccessibilityNo      Accessibility = "no"
	AccessibilityPrivate Accessibility = Accessibility(PreferNotToSay)
)

func (a Accessibility) Valid() bool {
	switch a {
	case AccessibilityYes, AccessibilityNo, AccessibilityPrivate:
		return true
	default:
		return false
	}
}

// TriState is a yes/no preference with an explicit wildcard, used for
// pets and accessibility filters.
type TriState string

const (
	TriStateYes         TriState = "yes"
	TriStateNo          TriState = "no"
	TriStateIndifferent TriState = TriState(Indifferent)
)

func (t TriState) Valid() bool {
	switch t {
	case TriStateYes, TriStateNo, TriStateIndifferent:
		return true
	default:
		return false
	}
}
