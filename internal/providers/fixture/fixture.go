package fixture

import (
	"context"
	"strconv"
	"strings"
	"time"

	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/timeutil"
)

const providerName = "fixture"

var clubs = [...]string{
	"FC Bayern München", "Borussia Dortmund", "RB Leipzig", "Bayer 04 Leverkusen",
	"VfB Stuttgart", "Eintracht Frankfurt", "SC Freiburg", "1. FC Union Berlin",
}

type slot struct {
	weekday time.Weekday
	hour    int
	minute  int
}

// Kickoff slots used for every generated week.
var slots = [...]slot{
	{time.Friday, 20, 30},
	{time.Saturday, 15, 30},
	{time.Saturday, 18, 30},
	{time.Sunday, 17, 30},
}

// Provider returns generated matches around the current week for local runs without network access.
type Provider struct {
	now func() time.Time
	loc *time.Location
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
		loc: timeutil.LoadZone(timeutil.ReferenceZone),
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return providerName
}

// FetchMatches returns matches for the previous, current and next week.
// Past matches carry a final result; the league and season only vary the ids.
func (p *Provider) FetchMatches(ctx context.Context, league, season string) ([]matches.RawMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.now()
	today := timeutil.StartOfDay(now, p.loc)
	monday := timeutil.AddDays(today, -(timeutil.ISOWeekday(today) - 1))
	base := seed(league, season)

	out := make([]matches.RawMatch, 0, 3*len(slots))
	for week := -1; week <= 1; week++ {
		start := timeutil.AddDays(monday, week*7)
		for i, s := range slots {
			day := timeutil.AddDays(start, (int(s.weekday)+6)%7)
			kickoff := time.Date(day.Year(), day.Month(), day.Day(), s.hour, s.minute, 0, 0, p.loc)
			id := base + (week+1)*len(slots) + i
			home := clubs[(i*2+week+2)%len(clubs)]
			away := clubs[(i*2+week+3)%len(clubs)]
			out = append(out, rawMatch(id, kickoff, home, away, kickoff.Before(now)))
		}
	}
	return out, nil
}

func rawMatch(id int, kickoff time.Time, home, away string, finished bool) matches.RawMatch {
	utc := kickoff.UTC().Format(time.RFC3339)
	local := kickoff.Format(timeutil.LocalDateTimeLayout)
	m := matches.RawMatch{
		MatchID:          &id,
		MatchDateTimeUTC: &utc,
		MatchDateTime:    &local,
		Team1:            &matches.TeamRef{TeamName: &home},
		Team2:            &matches.TeamRef{TeamName: &away},
	}
	if finished {
		halfType, finalType := 1, 2
		h1, a1 := id%2, 0
		h2, a2 := id%4, id%3
		m.MatchResults = []matches.Result{
			{ResultTypeID: &halfType, PointsTeam1: &h1, PointsTeam2: &a1},
			{ResultTypeID: &finalType, PointsTeam1: &h2, PointsTeam2: &a2},
		}
	}
	return m
}

func seed(league, season string) int {
	n, err := strconv.Atoi(strings.TrimSpace(season))
	if err != nil {
		n = 0
	}
	sum := 0
	for _, r := range league {
		sum += int(r)
	}
	return n*1000 + sum*10
}
