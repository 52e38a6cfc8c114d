package news

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativePattern = regexp.MustCompile(`(?i)(\d+)\s*(minute|min|hour|hr|day)s?\s+ago`)

// absoluteFormats are tried in order against date strings the scraped
// sites and APIs emit.
var absoluteFormats = []string{
	time.RFC3339,
	"Jan-02-06 03:04PM",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"20060102T150405",
	"2006-01-02",
	"03:04PM",
}

// ParseTimestamp turns a source timestamp into an absolute time.
// Relative "N units ago" expressions are subtracted from now, absolute
// strings go through the known layouts, and anything unparseable or
// empty resolves to now.
func ParseTimestamp(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	if m := relativePattern.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch strings.ToLower(m[2]) {
			case "minute", "min":
				return now.Add(-time.Duration(n) * time.Minute)
			case "hour", "hr":
				return now.Add(-time.Duration(n) * time.Hour)
			case "day":
				return now.AddDate(0, 0, -n)
			}
		}
	}

	switch strings.ToLower(raw) {
	case "today", "just now", "now":
		return now
	case "yesterday":
		return now.AddDate(0, 0, -1)
	}

	for _, layout := range absoluteFormats {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		// Time-only layouts parse into year zero; take today's date.
		if t.Year() == 0 {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		}
		return t
	}

	return now
}

// IsRelative reports whether the raw expression is a relative one worth
// preserving alongside the resolved timestamp.
func IsRelative(raw string) bool {
	return relativePattern.MatchString(raw)
}
