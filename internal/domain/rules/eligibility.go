package rules

import (
	"math"
	"strings"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
)

// Viewer bundles the discovering user's profile and preferences.
type Viewer struct {
	Profile     model.Profile
	Preferences model.Preferences
}

// Eligible is the discovery eligibility gate. All checks must pass; the
// first failure short-circuits. Missing orientation data on either side
// fails closed.
func Eligible(candidate model.Profile, viewer Viewer, distanceKM float64) bool {
	if !mutualOrientation(candidate, viewer) {
		return false
	}
	if !nameSearch(candidate, viewer.Preferences) {
		return false
	}
	if !location(candidate, viewer.Preferences, distanceKM) {
		return false
	}
	if !numericRanges(candidate, viewer.Preferences) {
		return false
	}
	if !categorical(candidate, viewer.Preferences) {
		return false
	}
	return triState(candidate, viewer.Preferences)
}

func mutualOrientation(candidate model.Profile, viewer Viewer) bool {
	if !viewer.Profile.Gender.Valid() || !viewer.Profile.Orientation.Valid() ||
		!candidate.Gender.Valid() || !candidate.Orientation.Valid() {
		return false
	}

	if !candidate.Orientation.Includes(viewer.Profile.Gender) {
		return false
	}
	if !viewer.Profile.Orientation.Includes(candidate.Gender) {
		return false
	}

	// The active search filter is independent of orientation; an unset
	// filter imposes no constraint.
	if filter := viewer.Preferences.SearchGender; filter.Valid() && !filter.Includes(candidate.Gender) {
		return false
	}

	return true
}

func nameSearch(candidate model.Profile, prefs model.Preferences) bool {
	query := strings.TrimSpace(prefs.NameQuery)
	if query == "" {
		return true
	}
	if !candidate.PubliclySearchable {
		return false
	}
	return strings.Contains(
		strings.ToLower(candidate.DisplayName),
		strings.ToLower(query),
	)
}

func location(candidate model.Profile, prefs model.Preferences, distanceKM float64) bool {
	state := strings.TrimSpace(prefs.State)
	if state != "" && !strings.EqualFold(state, enums.Indifferent) {
		if candidate.State != state {
			return false
		}
		city := strings.TrimSpace(prefs.City)
		if city != "" && !strings.EqualFold(city, enums.Indifferent) && candidate.City != city {
			return false
		}
		return true
	}

	// Unbounded distance (missing coordinates) is never excluded.
	if math.IsInf(distanceKM, 1) {
		return true
	}
	return distanceKM <= float64(prefs.MaxDistanceKM)
}

func numericRanges(candidate model.Profile, prefs model.Preferences) bool {
	if candidate.Age < prefs.AgeMin || candidate.Age > prefs.AgeMax {
		return false
	}
	return candidate.HeightCM >= prefs.HeightMinCM && candidate.HeightCM <= prefs.HeightMaxCM
}

func categorical(candidate model.Profile, prefs model.Preferences) bool {
	if !SelectionAllows(prefs.Goals, string(candidate.RelationshipGoal)) {
		return false
	}

	// Privacy-conscious values are exempt from lifestyle filters.
	if candidate.BodyType != enums.BodyTypePrivate &&
		!SelectionAllows(prefs.BodyTypes, string(candidate.BodyType)) {
		return false
	}
	if candidate.Smoking != enums.SmokingPrivate &&
		!SelectionAllows(prefs.Smoking, string(candidate.Smoking)) {
		return false
	}
	if candidate.Drinking != enums.DrinkingPrivate &&
		!SelectionAllows(prefs.Drinking, string(candidate.Drinking)) {
		return false
	}

	if !SelectionAllows(prefs.Zodiacs, candidate.Zodiac) {
		return false
	}
	return SelectionAllows(prefs.Religions, candidate.Religion)
}

func triState(candidate model.Profile, prefs model.Preferences) bool {
	if prefs.Pets != enums.TriStateIndifferent && prefs.Pets.Valid() {
		wantPets := prefs.Pets == enums.TriStateYes
		if candidate.HasPets != wantPets {
			return false
		}
	}

	if prefs.Accessibility != enums.TriStateIndifferent && prefs.Accessibility.Valid() {
		if candidate.Accessibility != enums.AccessibilityPrivate {
			want := enums.AccessibilityNo
			if prefs.Accessibility == enums.TriStateYes {
				want = enums.AccessibilityYes
			}
			if candidate.Accessibility != want {
				return false
			}
		}
	}

	return true
}
