// Package sanitizer normalizes free-form input before validation and
// storage. All functions are idempotent and never return errors; invalid
// input collapses to the empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses any internal whitespace
// run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

// NormalizeName cleans a patient or therapist display name.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeReason cleans an override's operator-entered reason text.
func NormalizeReason(reason string) string {
	return TrimAndNormalize(reason)
}

// NormalizeID lowercases and trims an external identifier such as a
// location or resource id.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
