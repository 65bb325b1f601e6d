package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Filters(t *testing.T) {
	testCases := []struct {
		name     string
		repo     Repository
		active   bool
		rankable bool
	}{
		{name: "plain", repo: Repository{}, active: true, rankable: true},
		{name: "fork", repo: Repository{Fork: true}},
		{name: "archived", repo: Repository{Archived: true}},
		{name: "private", repo: Repository{Private: true}, active: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, tc.repo.Active())
			assert.Equal(t, tc.rankable, tc.repo.Rankable())
		})
	}
}

func TestSkip_String(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "api/releases: boom", Skip{Repository: "api", Unit: "releases", Err: err}.String())
	assert.Equal(t, "page 3: boom", Skip{Unit: "page 3", Err: err}.String())
}

func TestReport_MarshalJSON(t *testing.T) {
	goBadge, ok := LookupBadge("Go")
	require.True(t, ok)

	report := Report{
		User:    "octo",
		Listing: []Skip{{Unit: "page 2", Err: errors.New("500")}},
		Badges:  BadgeSet{Languages: {goBadge.Markdown}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"page 2: 500"}, decoded["listing_skipped"])
	assert.Equal(t, map[string]any{"languages": []any{goBadge.Markdown}}, decoded["badges"])
	assert.NotContains(t, decoded, "profile")
}

func TestLookupBadge(t *testing.T) {
	b, ok := LookupBadge("Kubernetes")
	require.True(t, ok)
	assert.Equal(t, CloudDevOps, b.Category)
	assert.Equal(t, "![Kubernetes](https://img.shields.io/badge/Kubernetes-326ce5?style=for-the-badge&logo=kubernetes&logoColor=white)", b.Markdown)

	b, ok = LookupBadge("FastAPI")
	require.True(t, ok)
	assert.Equal(t, "![FastAPI](https://img.shields.io/badge/FastAPI-005571?style=for-the-badge&logo=fastapi)", b.Markdown)

	_, ok = LookupBadge("kubernetes")
	assert.False(t, ok)
}
