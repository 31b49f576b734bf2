package controller

import (
	"time"

	"sportkalender-service/internal/domain/options"
	"sportkalender-service/internal/schedule"
)

// Status is the fetch state of the controller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is a read-only view of the controller state.
// The Week it carries is never mutated after publication, so snapshots may be shared freely.
type Snapshot struct {
	Generation uint64         `json:"generation"`
	Status     Status         `json:"status"`
	Loading    bool           `json:"loading"`
	Loaded     bool           `json:"loaded"`
	Error      string         `json:"error,omitempty"`
	League     options.Option `json:"league"`
	Season     options.Option `json:"season"`
	WeekOffset int            `json:"weekOffset"`
	Week       schedule.Week  `json:"week"`
	MatchCount int            `json:"matchCount"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	err error
}

// Err returns the fetch error behind a failed snapshot.
func (s Snapshot) Err() error {
	return s.err
}
