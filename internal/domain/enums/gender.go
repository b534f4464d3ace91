package enums

type Gender string

const (
	GenderMan   Gender = "man"
	GenderWoman Gender = "woman"
	GenderOther Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMan, GenderWoman, GenderOther:
		return true
	default:
		return false
	}
}

// Orientation is the set of genders a user wants to be shown
// ("interested in"), also used as the discovery search filter.
type Orientation string

const (
	OrientationMen      Orientation = "men"
	OrientationWomen    Orientation = "women"
	OrientationEveryone Orientation = "everyone"
)

func (o Orientation) Valid() bool {
	switch o {
	case OrientationMen, OrientationWomen, OrientationEveryone:
		return true
	default:
		return false
	}
}

// Includes reports whether the orientation admits the given gender.
// GenderOther is only admitted by OrientationEveryone.
func (o Orientation) Includes(g Gender) bool {
	switch o {
	case OrientationEveryone:
		return true
	case OrientationMen:
		return g == GenderMan
	case OrientationWomen:
		return g == GenderWoman
	default:
		return false
	}
}
