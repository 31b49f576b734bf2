package timeutil

import (
	"time"
	// Embedded zone database so Europe/Berlin resolves on hosts without tzdata.
	_ "time/tzdata"
)

const (
	// DateLayout defines the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the German dd.MM.yyyy date label.
	DisplayDateLayout = "02.01.2006"
	// ClockLayout formats kickoff times as HH:MM.
	ClockLayout = "15:04"
	// LocalDateTimeLayout matches upstream timestamps that carry no offset.
	LocalDateTimeLayout = "2006-01-02T15:04:05"
	// ReferenceZone is the zone used for all day bucketing and rule matching.
	ReferenceZone = "Europe/Berlin"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LoadZone resolves a zone name, falling back to the reference zone and then UTC.
func LoadZone(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(ReferenceZone); err == nil {
		return loc
	}
	return time.UTC
}

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddDays shifts a date by whole calendar days, keeping midnight across DST changes.
func AddDays(day time.Time, days int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, day.Location())
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
