package testutil

import (
	"time"

	"sportkalender-service/internal/domain/matches"
)

// RawMatchOption customizes a raw match built by RawMatchAt.
type RawMatchOption func(*matches.RawMatch)

// RawMatchAt builds an upstream match with an offset timestamp and team names.
func RawMatchAt(kickoff time.Time, home, away string, opts ...RawMatchOption) matches.RawMatch {
	utc := kickoff.UTC().Format(time.RFC3339)
	m := matches.RawMatch{
		MatchDateTimeUTC: &utc,
		Team1:            &matches.TeamRef{TeamName: &home},
		Team2:            &matches.TeamRef{TeamName: &away},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithID sets the upstream match id.
func WithID(id int) RawMatchOption {
	return func(m *matches.RawMatch) {
		m.MatchID = &id
	}
}

// WithResult appends a result record.
func WithResult(typeID, home, away int) RawMatchOption {
	return func(m *matches.RawMatch) {
		m.MatchResults = append(m.MatchResults, matches.Result{
			ResultTypeID: &typeID,
			PointsTeam1:  &home,
			PointsTeam2:  &away,
		})
	}
}
