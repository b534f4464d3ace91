package rules

import "strings"

// ZodiacSigns is the canonical lowercase sign catalog used by profile
// validation and the zodiac preference filter.
var ZodiacSigns = []string{
	"aries",
	"taurus",
	"gemini",
	"cancer",
	"leo",
	"virgo",
	"libra",
	"scorpio",
	"sagittarius",
	"capricorn",
	"aquarius",
	"pisces",
}

func ValidZodiac(sign string) bool {
	normalized := strings.ToLower(strings.TrimSpace(sign))
	if normalized == "" {
		return true
	}
	for _, s := range ZodiacSigns {
		if s == normalized {
			return true
		}
	}
	return false
}
