package rules

import (
	"strings"

	"github.com/eddornelas03-glitch/encontrocerto/internal/domain/enums"
)

// CollapseMultiSelect normalizes a multi-select preference list. Values
// are trimmed, lowercased and deduplicated. An indifferent entry is
// exclusive: it clears every concrete selection, and an empty selection
// collapses back to the indifferent wildcard, so the list is never empty.
func CollapseMultiSelect(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" || normalized == enums.Indifferent {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	if len(out) == 0 {
		return []string{enums.Indifferent}
	}
	return out
}

// ToggleMultiSelect applies a single option toggle with the indifferent
// exclusivity rule: selecting the wildcard clears concrete options,
// selecting a concrete option drops the wildcard, and deselecting the
// last concrete option restores the wildcard.
func ToggleMultiSelect(current []string, option string) []string {
	option = strings.ToLower(strings.TrimSpace(option))
	if option == "" {
		return CollapseMultiSelect(current)
	}

	if option == enums.Indifferent {
		return []string{enums.Indifferent}
	}

	out := make([]string, 0, len(current)+1)
	removed := false
	for _, value := range current {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == enums.Indifferent {
			continue
		}
		if normalized == option {
			removed = true
			continue
		}
		out = append(out, normalized)
	}
	if !removed {
		out = append(out, option)
	}

	return CollapseMultiSelect(out)
}

// IsIndifferent reports whether the list carries no concrete constraint.
func IsIndifferent(values []string) bool {
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized != "" && normalized != enums.Indifferent {
			return false
		}
	}
	return true
}

// SelectionAllows reports whether a candidate attribute passes a
// multi-select filter: no constraint, empty attribute, or membership.
func SelectionAllows(selection []string, attribute string) bool {
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	if attribute == "" || IsIndifferent(selection) {
		return true
	}
	for _, value := range selection {
		if strings.ToLower(strings.TrimSpace(value)) == attribute {
			return true
		}
	}
	return false
}

// CanonicalPair orders a user pair so matches are stored uniquely.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
