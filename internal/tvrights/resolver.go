package tvrights

import (
	"sort"
	"time"

	"sportkalender-service/internal/timeutil"
)

// Resolver looks up broadcasters for a league and kickoff.
type Resolver struct {
	loc   *time.Location
	rules map[string][]Rule
}

// NewResolver builds a Resolver over table, matching slots in loc.
// A nil table selects DefaultTable and a nil loc the reference zone.
func NewResolver(table map[string][]Rule, loc *time.Location) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	if loc == nil {
		loc = timeutil.LoadZone(timeutil.ReferenceZone)
	}
	rules := make(map[string][]Rule, len(table))
	for league, list := range table {
		copied := make([]Rule, len(list))
		for i, r := range list {
			r.Channels = append([]Channel(nil), r.Channels...)
			copied[i] = r
		}
		rules[league] = copied
	}
	return &Resolver{loc: loc, rules: rules}
}

// Resolve returns the broadcasters for a kickoff, or an empty list.
// A zero kickoff is treated as unknown.
func (r *Resolver) Resolve(league string, kickoff time.Time) []Channel {
	if kickoff.IsZero() {
		return []Channel{}
	}
	rules, ok := r.rules[league]
	if !ok {
		return []Channel{}
	}

	local := kickoff.In(r.loc)
	weekday, hour, minute := int(local.Weekday()), local.Hour(), local.Minute()
	for _, rule := range rules {
		if !rule.IsWildcard() && rule.Weekday == weekday && rule.Hour == hour && rule.Minute == minute {
			return append([]Channel{}, rule.Channels...)
		}
	}
	for _, rule := range rules {
		if rule.IsWildcard() {
			return append([]Channel{}, rule.Channels...)
		}
	}
	return []Channel{}
}

// Leagues returns the league ids that carry a rule table, sorted.
func (r *Resolver) Leagues() []string {
	out := make([]string, 0, len(r.rules))
	for league := range r.rules {
		out = append(out, league)
	}
	sort.Strings(out)
	return out
}
