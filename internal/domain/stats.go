package domain

import "encoding/json"

// ScoreSummary describes the score distribution of all ranking candidates.
type ScoreSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// Ranking is the Ranker's result for one run.
type Ranking struct {
	Top        []ScoredRepository `json:"top"`
	Candidates int                `json:"candidates"`
	Summary    ScoreSummary       `json:"summary"`
	Skipped    []Skip             `json:"skipped,omitempty"`
}

// Detection is the Technology Detector's result for one run.
type Detection struct {
	Usage   *TechUsage `json:"usage"`
	Skipped []Skip     `json:"skipped,omitempty"`
}

// BadgeSet holds the rendered badges of each category, most used first.
type BadgeSet map[Category][]string

// MarshalJSON keys the set by category identifier.
func (b BadgeSet) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(b))
	for c, list := range b {
		out[c.Key()] = list
	}
	return json.Marshal(out)
}

// Report is everything a single run produced.
type Report struct {
	User         string     `json:"user"`
	Profile      *Profile   `json:"profile,omitempty"`
	Repositories int        `json:"repositories"`
	Listing      []Skip     `json:"listing_skipped,omitempty"`
	Detection    *Detection `json:"detection"`
	Badges       BadgeSet   `json:"badges"`
	Ranking      *Ranking   `json:"ranking"`
}
