package matches

import "encoding/json"

// The upstream API has served both lower-camel and PascalCase keys over time.
// Each wire struct carries both spellings; the lower-camel value wins when both are set.

type teamRefWire struct {
	TeamName    *string `json:"teamName"`
	TeamNameAlt *string `json:"TeamName"`
}

type resultWire struct {
	ResultTypeID    *int `json:"resultTypeID"`
	ResultTypeIDAlt *int `json:"ResultTypeID"`
	PointsTeam1     *int `json:"pointsTeam1"`
	PointsTeam1Alt  *int `json:"PointsTeam1"`
	PointsTeam2     *int `json:"pointsTeam2"`
	PointsTeam2Alt  *int `json:"PointsTeam2"`
}

type rawMatchWire struct {
	MatchID             *int     `json:"matchID"`
	MatchIDAlt          *int     `json:"MatchID"`
	MatchDateTimeUTC    *string  `json:"matchDateTimeUTC"`
	MatchDateTimeUTCAlt *string  `json:"MatchDateTimeUTC"`
	MatchDateTime       *string  `json:"matchDateTime"`
	MatchDateTimeAlt    *string  `json:"MatchDateTime"`
	Team1               *TeamRef `json:"team1"`
	Team1Alt            *TeamRef `json:"Team1"`
	Team2               *TeamRef `json:"team2"`
	Team2Alt            *TeamRef `json:"Team2"`
	MatchResults        []Result `json:"matchResults"`
	MatchResultsAlt     []Result `json:"MatchResults"`
}

// UnmarshalJSON accepts both key spellings of the team object.
func (t *TeamRef) UnmarshalJSON(data []byte) error {
	var w teamRefWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.TeamName = firstString(w.TeamName, w.TeamNameAlt)
	return nil
}

// UnmarshalJSON accepts both key spellings of a result record.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.ResultTypeID = firstInt(w.ResultTypeID, w.ResultTypeIDAlt)
	r.PointsTeam1 = firstInt(w.PointsTeam1, w.PointsTeam1Alt)
	r.PointsTeam2 = firstInt(w.PointsTeam2, w.PointsTeam2Alt)
	return nil
}

// UnmarshalJSON accepts both key spellings of a match object.
func (m *RawMatch) UnmarshalJSON(data []byte) error {
	var w rawMatchWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.MatchID = firstInt(w.MatchID, w.MatchIDAlt)
	m.MatchDateTimeUTC = firstString(w.MatchDateTimeUTC, w.MatchDateTimeUTCAlt)
	m.MatchDateTime = firstString(w.MatchDateTime, w.MatchDateTimeAlt)
	m.Team1 = firstTeam(w.Team1, w.Team1Alt)
	m.Team2 = firstTeam(w.Team2, w.Team2Alt)
	m.MatchResults = w.MatchResults
	if m.MatchResults == nil {
		m.MatchResults = w.MatchResultsAlt
	}
	return nil
}

func firstString(primary, alt *string) *string {
	if primary != nil {
		return primary
	}
	return alt
}

func firstInt(primary, alt *int) *int {
	if primary != nil {
		return primary
	}
	return alt
}

func firstTeam(primary, alt *TeamRef) *TeamRef {
	if primary != nil {
		return primary
	}
	return alt
}
