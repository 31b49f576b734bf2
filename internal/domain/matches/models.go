package matches

import (
	"fmt"
	"time"
)

const (
	// UnknownTeam replaces missing team names.
	UnknownTeam = "Unbekannt"
	// NoResultLabel is shown when a match has no final result yet.
	NoResultLabel = "vs"
)

// TeamRef is the upstream team object. Only the name is consumed.
type TeamRef struct {
	TeamName *string
}

// Result is one upstream result record (half time, full time, ...).
type Result struct {
	ResultTypeID *int
	PointsTeam1  *int
	PointsTeam2  *int
}

// complete reports whether both point values are present.
func (r Result) complete() bool {
	return r.PointsTeam1 != nil && r.PointsTeam2 != nil
}

func (r Result) rank() int {
	if r.ResultTypeID == nil {
		return 0
	}
	return *r.ResultTypeID
}

// RawMatch is the untrusted upstream match object; any field may be absent.
type RawMatch struct {
	MatchID          *int
	MatchDateTimeUTC *string
	MatchDateTime    *string
	Team1            *TeamRef
	Team2            *TeamRef
	MatchResults     []Result
}

// Score captures the final points of both teams.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Label renders the score as "home:away".
func (s Score) Label() string {
	return fmt.Sprintf("%d:%d", s.Home, s.Away)
}

// Match is the normalized, immutable form of a RawMatch.
// A zero Kickoff means the upstream timestamps were absent or unparseable.
type Match struct {
	ID      string    `json:"id"`
	Kickoff time.Time `json:"kickoff"`
	Home    string    `json:"home"`
	Away    string    `json:"away"`
	Score   *Score    `json:"score,omitempty"`
}

// HasKickoff reports whether the kickoff instant is known.
func (m Match) HasKickoff() bool {
	return !m.Kickoff.IsZero()
}

// ScoreLabel returns the final score label or NoResultLabel.
func (m Match) ScoreLabel() string {
	if m.Score == nil {
		return NoResultLabel
	}
	return m.Score.Label()
}
