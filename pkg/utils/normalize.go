// Package utils: input normalization for profile fields.
package utils

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/biter777/countries"
)

// CleanPhoneNumber strips every non-digit rune and requires exactly 10
// digits to remain.
func CleanPhoneNumber(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() != 10 {
		return "", errors.New("not a valid phone number")
	}
	return b.String(), nil
}

// CurrentAge returns full years elapsed since dob.
func CurrentAge(dob time.Time) int {
	now := time.Now()
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// NormalizeCountry resolves a name or ISO code to the canonical English
// country name.
func NormalizeCountry(raw string) (string, error) {
	c := countries.ByName(strings.TrimSpace(raw))
	if !c.IsValid() {
		return "", errors.New("country is not recognized")
	}
	return c.String(), nil
}
