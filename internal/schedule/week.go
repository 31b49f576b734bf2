package schedule

import (
	"time"

	"sportkalender-service/internal/tvrights"
)

// NoKickoffLabel is shown when a kickoff time is unknown.
const NoKickoffLabel = "--:--"

// Window is the Monday-to-Sunday range of a week, both at midnight in the reference zone.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls on one of the window's dates.
func (w Window) Contains(t time.Time) bool {
	local := t.In(w.Start.Location())
	return !local.Before(w.Start) && local.Before(w.End.AddDate(0, 0, 1))
}

// MatchView is one display row.
type MatchView struct {
	ID       string             `json:"id"`
	Kickoff  string             `json:"kickoff"`
	Home     string             `json:"home"`
	Away     string             `json:"away"`
	Score    string             `json:"score"`
	Channels []tvrights.Channel `json:"channels"`
}

// DayBlock holds the matches of one calendar date.
type DayBlock struct {
	Date      time.Time   `json:"date"`
	DayLabel  string      `json:"dayLabel"`
	DateLabel string      `json:"dateLabel"`
	IsToday   bool        `json:"isToday"`
	Matches   []MatchView `json:"matches"`
}

// Week is the derived view for one window. Days is empty until a week has been built.
type Week struct {
	Window Window     `json:"window"`
	Offset int        `json:"offset"`
	Label  string     `json:"label"`
	Days   []DayBlock `json:"days"`
}

// IsEmpty reports whether no week has been derived yet.
func (w Week) IsEmpty() bool {
	return len(w.Days) == 0
}

// MatchCount returns the number of matches shown across all days.
func (w Week) MatchCount() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.Matches)
	}
	return n
}

var germanWeekdays = [...]string{
	time.Sunday:    "Sonntag",
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
}

// DayName returns the German weekday name.
func DayName(d time.Weekday) string {
	return germanWeekdays[d]
}
