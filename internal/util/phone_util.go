package util

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+998\d{9}$`)

// NormalizePhone strips formatting characters and normalizes the number
// to the +998XXXXXXXXX form. Returns false when the input is not a valid
// Uzbek number.
func NormalizePhone(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if strings.HasPrefix(cleaned, "998") {
		cleaned = "+" + cleaned
	}

	if !phonePattern.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}
