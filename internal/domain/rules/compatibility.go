package rules

import (
	"math"
	"strings"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/model"
)

const (
	interestWeight = 3.0
	scoreBaseline  = 50.0
	scoreCeiling   = 99
)

// CompatibilityScore ranks a candidate for a viewer on a 50..99 scale.
// Shared interests carry triple weight; soft preference dimensions count
// only when the viewer states a concrete preference, so a viewer with no
// constraints and no shared interests lands exactly on the baseline.
// The ceiling of 99 keeps even an identical profile short of "perfect".
// Presentation-only: eligibility never depends on the score.
func CompatibilityScore(candidate model.Profile, viewer Viewer) int {
	var score, total float64

	total += interestWeight
	if shared := sharedInterests(viewer.Profile.Interests, candidate.Interests); shared > 0 {
		denominator := len(viewer.Profile.Interests)
		if denominator < 1 {
			denominator = 1
		}
		score += interestWeight * float64(shared) / float64(denominator)
	}

	prefs := viewer.Preferences
	if !IsIndifferent(prefs.Goals) {
		total++
		if SelectionAllows(prefs.Goals, string(candidate.RelationshipGoal)) {
			score++
		}
	}
	if !IsIndifferent(prefs.Drinking) {
		total++
		if candidate.Drinking == enums.DrinkingPrivate ||
			SelectionAllows(prefs.Drinking, string(candidate.Drinking)) {
			score++
		}
	}
	if !IsIndifferent(prefs.Smoking) {
		total++
		if candidate.Smoking == enums.SmokingPrivate ||
			SelectionAllows(prefs.Smoking, string(candidate.Smoking)) {
			score++
		}
	}
	if prefs.Pets != enums.TriStateIndifferent && prefs.Pets.Valid() {
		total++
		if (prefs.Pets == enums.TriStateYes) == candidate.HasPets {
			score++
		}
	}

	if total <= 0 {
		return int(scoreBaseline)
	}

	result := int(math.Round(scoreBaseline + scoreBaseline*score/total))
	if result > scoreCeiling {
		return scoreCeiling
	}
	return result
}

func sharedInterests(viewer, candidate []string) int {
	if len(viewer) == 0 || len(candidate) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(candidate))
	for _, interest := range candidate {
		set[strings.ToLower(strings.TrimSpace(interest))] = struct{}{}
	}

	shared := 0
	for _, interest := range viewer {
		if _, ok := set[strings.ToLower(strings.TrimSpace(interest))]; ok {
			shared++
		}
	}
	return shared
}
