package domain

import (
	"encoding/json"
	"sort"
)

// TechUsage accumulates a weighted usage score per technology for one run.
// Counters only grow. Names are remembered in first-seen order so that
// technologies with equal scores always sort the same way.
type TechUsage struct {
	counts map[string]int
	order  []string
}

// NewTechUsage returns an empty usage aggregate.
func NewTechUsage() *TechUsage {
	return &TechUsage{counts: make(map[string]int)}
}

// Add increases the counter of tech by weight. Negative weights are ignored.
func (u *TechUsage) Add(tech string, weight int) {
	if weight < 0 {
		return
	}
	if _, ok := u.counts[tech]; !ok {
		u.order = append(u.order, tech)
	}
	u.counts[tech] += weight
}

// Count returns the accumulated score of tech.
func (u *TechUsage) Count(tech string) int {
	return u.counts[tech]
}

// Len returns the number of distinct technologies seen.
func (u *TechUsage) Len() int {
	return len(u.order)
}

// TechCount is one entry of a ranked usage list.
type TechCount struct {
	Technology string `json:"technology"`
	Count      int    `json:"count"`
}

// Ranked returns all technologies by descending score, ties in first-seen order.
func (u *TechUsage) Ranked() []TechCount {
	ranked := make([]TechCount, 0, len(u.order))
	for _, tech := range u.order {
		ranked = append(ranked, TechCount{Technology: tech, Count: u.counts[tech]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// MarshalJSON encodes the usage as its ranked list.
func (u *TechUsage) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Ranked())
}
