// Package timezone formats timestamps in Pacific time, the intake team's
// operating timezone, handling daylight saving via the tz database.
package timezone

import "time"

const pacificName = "America/Los_Angeles"

var pacific *time.Location

func init() {
	loc, err := time.LoadLocation(pacificName)
	if err != nil {
		// No tzdata on the host; UTC beats crashing.
		loc = time.UTC
	}
	pacific = loc
}

// Timestamp returns t as "2006-01-02 15:04:05 PST" in Pacific time.
func Timestamp(t time.Time) string {
	return t.In(pacific).Format("2006-01-02 15:04:05 MST")
}

// Date returns t's Pacific calendar date, e.g. "October 7, 2025".
func Date(t time.Time) string {
	return t.In(pacific).Format("January 2, 2006")
}

// Readable returns a human-readable Pacific timestamp,
// e.g. "October 7, 2025 5:30:45 PM PDT".
func Readable(t time.Time) string {
	return t.In(pacific).Format("January 2, 2006 3:04:05 PM MST")
}
