// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"time"
)

// Repository is an immutable snapshot of a repository as returned by the forge.
// It is never mutated after it has been fetched.
type Repository struct {
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	Private     bool      `json:"private"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Watchers    int       `json:"watchers"`
	OpenIssues  int       `json:"open_issues"`
	Language    string    `json:"language,omitempty"`
	Homepage    string    `json:"homepage,omitempty"`
	SizeKB      int       `json:"size_kb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
}

// Active reports whether the repository takes part in technology detection.
func (r Repository) Active() bool {
	return !r.Fork && !r.Archived
}

// Rankable reports whether the repository may be featured.
func (r Repository) Rankable() bool {
	return r.Active() && !r.Private
}

// Release is a published release of a repository.
type Release struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// Contributor is one entry of a repository's contributor list.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// Metrics holds the extended, per-repository figures used for ranking.
type Metrics struct {
	Contributors int       `json:"contributors"`
	Commits      int       `json:"commits"`
	Releases     []Release `json:"releases,omitempty"`
}

// LatestRelease returns the first release of the list, which the forge orders newest first.
func (m Metrics) LatestRelease() (Release, bool) {
	if len(m.Releases) == 0 {
		return Release{}, false
	}
	return m.Releases[0], true
}

// ScoredRepository is a repository together with its metrics and computed score.
type ScoredRepository struct {
	Repository
	Metrics Metrics `json:"metrics"`
	Score   int     `json:"score"`
}

// Skip records a unit of work that failed and was left out of the result.
type Skip struct {
	Repository string
	Unit       string
	Err        error
}

func (s Skip) String() string {
	if s.Repository == "" {
		return fmt.Sprintf("%s: %v", s.Unit, s.Err)
	}
	return fmt.Sprintf("%s/%s: %v", s.Repository, s.Unit, s.Err)
}

// MarshalText renders the skip with its cause so reports stay readable as JSON.
func (s Skip) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RepositoryListing is the outcome of paginating a user's repositories.
// Pagination stops at the first failed page, so Repositories may be partial;
// the failed page is then recorded in Skipped.
type RepositoryListing struct {
	Repositories []Repository `json:"repositories"`
	Skipped      []Skip       `json:"skipped,omitempty"`
}

// Complete reports whether pagination ran to the empty terminating page.
func (l *RepositoryListing) Complete() bool {
	return len(l.Skipped) == 0
}

// Profile is the owner information looked up alongside the listing.
type Profile struct {
	Login              string `json:"login"`
	Name               string `json:"name,omitempty"`
	PublicRepositories int    `json:"public_repositories"`
}
