package news

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestParseTimestampRelative(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	got := ParseTimestamp("15 minutes ago", now)
	assert.Equal(t, now.Add(-15*time.Minute), got)

	got = ParseTimestamp("3 hours ago", now)
	assert.Equal(t, now.Add(-3*time.Hour), got)

	got = ParseTimestamp("2 days ago", now)
	assert.Equal(t, now.AddDate(0, 0, -2), got)

	got = ParseTimestamp("1 hr ago", now)
	assert.Equal(t, now.Add(-time.Hour), got)
}

func TestParseTimestampAbsolute(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	got := ParseTimestamp("Jan-12-26 08:45AM", now)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 12, got.Day())
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 45, got.Minute())

	got = ParseTimestamp("2026-03-04T09:30:00Z", now)
	assert.Equal(t, 4, got.Day())
	assert.Equal(t, 9, got.Hour())

	got = ParseTimestamp("March 1, 2026", now)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestParseTimestampTimeOnlyUsesToday(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	got := ParseTimestamp("09:15AM", now)
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 15, got.Minute())
}

func TestParseTimestampDefaultsToNow(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now, ParseTimestamp("", now))
	assert.Equal(t, now, ParseTimestamp("not a date at all", now))
	assert.Equal(t, now, ParseTimestamp("today", now))
	assert.Equal(t, now.AddDate(0, 0, -1), ParseTimestamp("yesterday", now))
}

func TestIsRelative(t *testing.T) {
	assert.Equal(t, true, IsRelative("2 hours ago"))
	assert.Equal(t, true, IsRelative("45 min ago"))
	assert.Equal(t, false, IsRelative("Jan-12-26 08:45AM"))
	assert.Equal(t, false, IsRelative(""))
}
