package utils

import (
	"time"
	_ "time/tzdata"
)

// LoadZone returns the named IANA location, or UTC when the name is empty or unknown.
func LoadZone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

// AtLocalHour places the calendar date of day at the given hour in loc.
func AtLocalHour(day time.Time, hour int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDayHeading renders dates as "Monday, January 02".
func FormatDayHeading(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 02")
}
