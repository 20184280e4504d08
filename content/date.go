package content

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a post date in any of the common written forms
// (ISO 8601, RFC 1123, "June 1 2024", US-style "06/01/2024" and so on).
// Dates without a zone are read as UTC. ok is false when s is not a date.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
