package validation

import (
	"regexp"
	"strings"
)

var countryCodeRegex = regexp.MustCompile(`^[A-Za-z]{2}$`)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsCountryCode reports whether s is a two-letter ISO 3166 alpha-2 style code
func IsCountryCode(s string) bool {
	return countryCodeRegex.MatchString(strings.TrimSpace(s))
}

// CountryOrDefault returns country unchanged, or fallback when it is blank
func CountryOrDefault(country, fallback string) string {
	if !IsNotEmpty(country) {
		return fallback
	}
	return country
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
