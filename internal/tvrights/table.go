package tvrights

import "time"

// Wildcard marks a rule that applies to any kickoff.
const Wildcard = -1

// Channel is a broadcaster tag.
type Channel struct {
	Name   string `json:"name"`
	IsFree bool   `json:"isFree"`
}

// Rule maps a kickoff slot in the reference zone to its broadcasters.
// Weekday uses time.Weekday numbering (0 = Sunday).
type Rule struct {
	Weekday  int
	Hour     int
	Minute   int
	Channels []Channel
}

// IsWildcard reports whether the rule ignores the kickoff slot.
func (r Rule) IsWildcard() bool {
	return r.Weekday == Wildcard
}

func exact(day time.Weekday, hour, minute int, channels ...Channel) Rule {
	return Rule{Weekday: int(day), Hour: hour, Minute: minute, Channels: channels}
}

func wildcard(channels ...Channel) Rule {
	return Rule{Weekday: Wildcard, Hour: Wildcard, Minute: Wildcard, Channels: channels}
}

var (
	sky      = Channel{Name: "Sky"}
	dazn     = Channel{Name: "DAZN"}
	daznKonf = Channel{Name: "DAZN Konf."}
	prime    = Channel{Name: "Prime"}
	rtl      = Channel{Name: "RTL", IsFree: true}
	ardZDF   = Channel{Name: "ARD/ZDF", IsFree: true}
	zdf      = Channel{Name: "ZDF", IsFree: true}
)

// DefaultTable returns the broadcaster rules per league. bl3 has no table.
func DefaultTable() map[string][]Rule {
	return map[string][]Rule{
		"bl1": {
			exact(time.Friday, 20, 30, sky),
			exact(time.Saturday, 15, 30, sky, daznKonf),
			exact(time.Saturday, 18, 30, sky),
			exact(time.Saturday, 20, 30, sky),
			exact(time.Sunday, 15, 30, dazn),
			exact(time.Sunday, 17, 30, dazn),
			exact(time.Sunday, 19, 30, dazn),
			exact(time.Tuesday, 20, 30, sky),
			exact(time.Wednesday, 20, 30, sky),
		},
		"bl2": {
			exact(time.Friday, 18, 30, sky),
			exact(time.Saturday, 13, 0, sky),
			exact(time.Saturday, 20, 30, sky, rtl),
			exact(time.Sunday, 13, 30, sky),
		},
		"dfb": {
			wildcard(sky, ardZDF),
		},
		"ucl": {
			wildcard(dazn, prime, zdf),
		},
	}
}
