package schedule

import (
	"sort"
	"time"

	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/timeutil"
	"sportkalender-service/internal/tvrights"
)

const daysPerWeek = 7

// ChannelResolver resolves broadcasters for a kickoff.
type ChannelResolver interface {
	Resolve(league string, kickoff time.Time) []tvrights.Channel
}

// Engine groups normalized matches into week views.
type Engine struct {
	loc      *time.Location
	resolver ChannelResolver
}

// NewEngine builds an Engine for loc (nil selects the reference zone).
// A nil resolver yields no broadcasters.
func NewEngine(loc *time.Location, resolver ChannelResolver) *Engine {
	if loc == nil {
		loc = timeutil.LoadZone(timeutil.ReferenceZone)
	}
	return &Engine{loc: loc, resolver: resolver}
}

// Location returns the zone used for day bucketing.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// WindowFor returns the week window offset weeks away from the week containing now.
func (e *Engine) WindowFor(now time.Time, offset int) Window {
	today := timeutil.StartOfDay(now, e.loc)
	monday := timeutil.AddDays(today, -(timeutil.ISOWeekday(today) - 1))
	start := timeutil.AddDays(monday, offset*daysPerWeek)
	return Window{Start: start, End: timeutil.AddDays(start, daysPerWeek-1)}
}

// BuildWeek derives the week view. It depends only on its arguments.
func (e *Engine) BuildWeek(all []matches.Match, league string, offset int, now time.Time) Week {
	window := e.WindowFor(now, offset)

	buckets := make(map[string][]matches.Match, daysPerWeek)
	for _, m := range all {
		if !m.HasKickoff() || !window.Contains(m.Kickoff) {
			continue
		}
		day := timeutil.FormatDate(m.Kickoff.In(e.loc))
		buckets[day] = append(buckets[day], m)
	}

	days := make([]DayBlock, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		date := timeutil.AddDays(window.Start, i)
		dayMatches := buckets[timeutil.FormatDate(date)]
		sort.SliceStable(dayMatches, func(a, b int) bool {
			return dayMatches[a].Kickoff.Before(dayMatches[b].Kickoff)
		})

		views := make([]MatchView, 0, len(dayMatches))
		for _, m := range dayMatches {
			views = append(views, e.view(m, league))
		}
		days = append(days, DayBlock{
			Date:      date,
			DayLabel:  DayName(date.Weekday()),
			DateLabel: date.Format(timeutil.DisplayDateLayout),
			IsToday:   timeutil.SameDate(date, now, e.loc),
			Matches:   views,
		})
	}

	return Week{
		Window: window,
		Offset: offset,
		Label:  window.Start.Format(timeutil.DisplayDateLayout) + " - " + window.End.Format(timeutil.DisplayDateLayout),
		Days:   days,
	}
}

func (e *Engine) view(m matches.Match, league string) MatchView {
	kickoff := NoKickoffLabel
	if m.HasKickoff() {
		kickoff = m.Kickoff.In(e.loc).Format(timeutil.ClockLayout)
	}
	channels := []tvrights.Channel{}
	if e.resolver != nil {
		channels = e.resolver.Resolve(league, m.Kickoff)
	}
	return MatchView{
		ID:       m.ID,
		Kickoff:  kickoff,
		Home:     m.Home,
		Away:     m.Away,
		Score:    m.ScoreLabel(),
		Channels: channels,
	}
}
