package rules

import (
	"testing"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
)

func TestCompatibilityScoreBaseline(t *testing.T) {
	viewer := testViewer()
	candidate := testProfile(2, enums.GenderMan, enums.OrientationWomen)

	// No shared interests, every preference dimension indifferent.
	viewer.Profile.Interests = []string{"surf", "cinema"}
	candidate.Interests = []string{"hiking"}

	if got := CompatibilityScore(candidate, viewer); got != 50 {
		t.Fatalf("expected baseline 50, got %d", got)
	}
}

func TestCompatibilityScoreCeiling(t *testing.T) {
	viewer := testViewer()
	viewer.Profile.Interests = []string{"surf", "cinema"}
	viewer.Preferences.Goals = []string{string(enums.GoalSerious)}
	viewer.Preferences.Drinking = []string{string(enums.DrinkingSocially)}
	viewer.Preferences.Smoking = []string{string(enums.SmokingNo)}
	viewer.Preferences.Pets = enums.TriStateYes

	candidate := testProfile(2, enums.GenderMan, enums.OrientationWomen)
	candidate.Interests = []string{"surf", "cinema"}
	candidate.HasPets = true

	// Every dimension maxed out still stops short of 100.
	if got := CompatibilityScore(candidate, viewer); got != 99 {
		t.Fatalf("expected ceiling 99 for a perfect match, got %d", got)
	}
}

func TestCompatibilityScoreBounds(t *testing.T) {
	viewer := testViewer()
	viewer.Preferences.Goals = []string{string(enums.GoalSerious)}
	viewer.Preferences.Smoking = []string{string(enums.SmokingNo)}
	viewer.Profile.Interests = []string{"surf", "cinema", "books"}

	candidates := []struct {
		name      string
		interests []string
		goal      enums.RelationshipGoal
		smoking   enums.Smoking
	}{
		{name: "nothing in common", interests: nil, goal: enums.GoalCasual, smoking: enums.SmokingYes},
		{name: "interests only", interests: []string{"surf"}, goal: enums.GoalCasual, smoking: enums.SmokingYes},
		{name: "preferences only", interests: nil, goal: enums.GoalSerious, smoking: enums.SmokingNo},
		{name: "mixed", interests: []string{"surf", "books"}, goal: enums.GoalSerious, smoking: enums.SmokingYes},
	}

	for _, tc := range candidates {
		candidate := testProfile(2, enums.GenderMan, enums.OrientationWomen)
		candidate.Interests = tc.interests
		candidate.RelationshipGoal = tc.goal
		candidate.Smoking = tc.smoking

		got := CompatibilityScore(candidate, viewer)
		if got < 50 || got > 99 {
			t.Fatalf("%s: score %d out of [50, 99]", tc.name, got)
		}
	}
}

func TestCompatibilityScoreSharedInterestsWeigh(t *testing.T) {
	viewer := testViewer()
	viewer.Profile.Interests = []string{"surf", "cinema"}

	none := testProfile(2, enums.GenderMan, enums.OrientationWomen)
	none.Interests = []string{"hiking"}

	one := none
	one.Interests = []string{"surf"}

	both := none
	both.Interests = []string{"surf", "cinema"}

	sNone := CompatibilityScore(none, viewer)
	sOne := CompatibilityScore(one, viewer)
	sBoth := CompatibilityScore(both, viewer)

	if !(sNone < sOne && sOne < sBoth) {
		t.Fatalf("expected monotonic scores, got %d, %d, %d", sNone, sOne, sBoth)
	}
}

func TestCompatibilityScorePrivateValuesCount(t *testing.T) {
	viewer := testViewer()
	viewer.Preferences.Smoking = []string{string(enums.SmokingNo)}
	viewer.Preferences.Drinking = []string{string(enums.DrinkingNever)}

	candidate := testProfile(2, enums.GenderMan, enums.OrientationWomen)
	candidate.Smoking = enums.SmokingPrivate
	candidate.Drinking = enums.DrinkingPrivate

	mismatching := candidate
	mismatching.Smoking = enums.SmokingYes
	mismatching.Drinking = enums.DrinkingOften

	if CompatibilityScore(candidate, viewer) <= CompatibilityScore(mismatching, viewer) {
		t.Fatal("undisclosed lifestyle values must not score as mismatches")
	}
}
