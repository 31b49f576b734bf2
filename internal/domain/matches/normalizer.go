package matches

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sportkalender-service/internal/timeutil"
)

// Normalizer turns upstream matches into canonical Match values in a fixed zone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer builds a Normalizer for loc; nil selects the reference zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = timeutil.LoadZone(timeutil.ReferenceZone)
	}
	return &Normalizer{loc: loc}
}

// Location returns the zone kickoffs are expressed in.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize never fails; unusable fields degrade to placeholders.
func (n *Normalizer) Normalize(raw RawMatch) Match {
	m := Match{
		Kickoff: n.kickoff(raw),
		Home:    teamName(raw.Team1),
		Away:    teamName(raw.Team2),
		Score:   finalScore(raw.MatchResults),
	}
	m.ID = matchID(raw, m)
	return m
}

// NormalizeAll normalizes every match, preserving order.
func (n *Normalizer) NormalizeAll(raw []RawMatch) []Match {
	out := make([]Match, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.Normalize(r))
	}
	return out
}

// kickoff prefers the offset-carrying timestamp; the local one is read as reference-zone wall time.
func (n *Normalizer) kickoff(raw RawMatch) time.Time {
	if raw.MatchDateTimeUTC != nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw.MatchDateTimeUTC)); err == nil {
			return t.In(n.loc)
		}
	}
	if raw.MatchDateTime != nil {
		if t, err := time.ParseInLocation(timeutil.LocalDateTimeLayout, strings.TrimSpace(*raw.MatchDateTime), n.loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// finalScore picks the highest-ranked result with both points; ties keep the first record.
func finalScore(results []Result) *Score {
	best := -1
	for i, r := range results {
		if !r.complete() {
			continue
		}
		if best == -1 || r.rank() > results[best].rank() {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &Score{Home: *results[best].PointsTeam1, Away: *results[best].PointsTeam2}
}

func teamName(t *TeamRef) string {
	if t == nil || t.TeamName == nil {
		return UnknownTeam
	}
	return *t.TeamName
}

func matchID(raw RawMatch, m Match) string {
	if raw.MatchID != nil {
		return strconv.Itoa(*raw.MatchID)
	}
	when := "tbd"
	if m.HasKickoff() {
		when = m.Kickoff.Format("20060102T1504")
	}
	return fmt.Sprintf("%s-%s-%s", when, slug(m.Home), slug(m.Away))
}

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
