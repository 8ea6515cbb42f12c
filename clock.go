package queuectl

import (
	"fmt"
	"time"
)

// timestampLayouts are accepted on input, most specific first.
// RFC 3339 covers both the canonical trailing-Z form and +00:00
// offsets; the zoneless layouts are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Now returns the current wall-clock time in UTC.
//
// All timestamps stored and compared by the queue originate here, so
// scheduling predicates never mix time zones. The result is truncated
// to whole microseconds so that a timestamp reads back from the store
// unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FormatTimestamp serialises t as ISO-8601 UTC with a trailing Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp parses an ISO-8601 timestamp.
//
// Input is accepted liberally: a trailing Z, an explicit offset such
// as +00:00, or no zone at all (taken as UTC). The result is always
// normalised to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
}
