package validation

import (
	"regexp"
	"strings"
)

// Token sets and formats accepted at the HTTP boundary. Handlers must run
// these checks before any repository call; the store itself does not validate.

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	weekdays = map[string]bool{
		"monday":    true,
		"tuesday":   true,
		"wednesday": true,
		"thursday":  true,
		"friday":    true,
		"saturday":  true,
		"sunday":    true,
	}

	categories = map[string]bool{
		"all":               true,
		"breakfast":         true,
		"lunch":             true,
		"dinner":            true,
		"snacks":            true,
		"physical-activity": true,
	}
)

// NormalizeDay lowercases a day token or date so storage is case-consistent.
func NormalizeDay(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}

// IsWeekday reports whether day is one of monday..sunday, case-insensitively.
func IsWeekday(day string) bool {
	return weekdays[NormalizeDay(day)]
}

// IsDate reports whether day matches YYYY-MM-DD exactly. Calendar correctness
// is not checked; 2025-02-31 passes.
func IsDate(day string) bool {
	return dateRegex.MatchString(day)
}

// IsDay reports whether day is a valid storage key: a weekday token or a date.
func IsDay(day string) bool {
	return IsWeekday(day) || IsDate(day)
}

// IsDayFilter reports whether day is a valid search filter: any valid storage
// key or the literal "all".
func IsDayFilter(day string) bool {
	return NormalizeDay(day) == "all" || IsDay(day)
}

// IsCategory reports whether category is a meal category, "physical-activity"
// or "all", case-insensitively.
func IsCategory(category string) bool {
	return categories[strings.ToLower(strings.TrimSpace(category))]
}

// IsMealCategory reports whether category names one of the four meal buckets.
func IsMealCategory(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	return c == "breakfast" || c == "lunch" || c == "dinner" || c == "snacks"
}

// IsISOTimestamp reports whether ts matches YYYY-MM-DDTHH:MM:SS[.mmm]Z exactly.
func IsISOTimestamp(ts string) bool {
	return isoRegex.MatchString(ts)
}

// IsEmail reports whether s looks like an email address. Same loose check the
// registration endpoint has always used.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}
