// Package normalize cleans up the date and subgroup representations that
// accumulated in the ledger across schema versions. Every function here is
// pure and idempotent.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

var (
	isoDateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Date converts a DD/MM/YYYY string into YYYY-MM-DD. ISO dates and any
// unrecognized input are returned untouched.
func Date(s string) string {
	trimmed := strings.TrimSpace(s)
	if isoDateRegex.MatchString(trimmed) {
		return trimmed
	}

	m := slashDateRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return s
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
}

// ParseDate normalizes s and parses it as a calendar date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(Date(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or DD/MM/YYYY", s)
	}
	return d, nil
}

// MonthKey returns the YYYY-MM bucket of a stored date, or "" when the
// value is too short to carry one.
func MonthKey(s string) string {
	d := Date(s)
	if len(d) < 7 || d[4] != '-' {
		return ""
	}
	return d[:7]
}
