package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/profile-readme/internal/domain"
	"github.com/naka-gawa/profile-readme/internal/gateway"
)

const (
	// DefaultLimit is the number of repositories featured when none is configured.
	DefaultLimit = 5
	// minScore is exclusive: a repository must score above it to be featured.
	minScore = 5
	// previewLimit is how many fetched repositories are listed in debug output.
	previewLimit = 5
)

var popularLanguages = map[string]bool{
	"Python":     true,
	"JavaScript": true,
	"TypeScript": true,
	"Java":       true,
	"Go":         true,
	"Rust":       true,
}

// Ranker scores repositories by popularity and activity.
type Ranker struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	limit   int
	now     func() time.Time
}

// NewRanker creates a Ranker returning at most limit repositories.
// A non-positive limit falls back to DefaultLimit.
func NewRanker(fetcher gateway.Fetcher, logger *log.Logger, limit int) *Ranker {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Ranker{
		fetcher: fetcher,
		logger:  logger,
		limit:   limit,
		now:     time.Now,
	}
}

// WithClock replaces the time source the recency bonuses are measured against.
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.now = now
	return r
}

// Rank scores every public, non-fork, non-archived repository and returns the
// best ones. Equal scores keep their input order.
func (r *Ranker) Rank(ctx context.Context, repos []domain.Repository) *domain.Ranking {
	ranking := &domain.Ranking{}
	now := r.now()

	var candidates []domain.ScoredRepository
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			r.logger.Debug("Ranking interrupted", "err", err)
			break
		}
		if !repo.Rankable() {
			continue
		}
		metrics := r.metrics(ctx, repo, ranking)
		score := Score(repo, metrics, now)
		r.logger.Debug("Scored repository", "repo", repo.Name, "score", score)
		if score <= minScore {
			continue
		}
		candidates = append(candidates, domain.ScoredRepository{Repository: repo, Metrics: metrics, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	ranking.Candidates = len(candidates)
	ranking.Summary = summarize(candidates)
	if len(candidates) > r.limit {
		candidates = candidates[:r.limit]
	}
	ranking.Top = candidates
	return ranking
}

// metrics fetches releases and contributors. Repositories nobody starred or
// forked are not worth the extra calls and keep zero metrics.
func (r *Ranker) metrics(ctx context.Context, repo domain.Repository, ranking *domain.Ranking) domain.Metrics {
	var m domain.Metrics
	if repo.Stars == 0 && repo.Forks == 0 {
		return m
	}

	releases, err := r.fetcher.FetchReleases(ctx, repo.Owner, repo.Name)
	if err != nil {
		r.skip(ranking, repo, "releases", err)
	} else {
		m.Releases = releases
	}

	contributors, err := r.fetcher.FetchContributors(ctx, repo.Owner, repo.Name)
	if err != nil {
		r.skip(ranking, repo, "contributors", err)
	} else {
		m.Contributors = len(contributors)
		for _, c := range contributors {
			m.Commits += c.Contributions
		}
	}
	return m
}

func (r *Ranker) skip(ranking *domain.Ranking, repo domain.Repository, unit string, err error) {
	r.logger.Warn("Skipped", "repo", repo.Name, "unit", unit, "err", err)
	ranking.Skipped = append(ranking.Skipped, domain.Skip{Repository: repo.Name, Unit: unit, Err: err})
}

// Score computes the composite popularity/activity score of a repository as of now.
func Score(repo domain.Repository, m domain.Metrics, now time.Time) int {
	score := repo.Stars*3 + repo.Forks*2 + repo.Watchers + m.Contributors*5

	if len(m.Releases) > 0 {
		score += len(m.Releases) * 4
		if latest, ok := m.LatestRelease(); ok && !latest.PublishedAt.IsZero() {
			switch days := daysSince(latest.PublishedAt, now); {
			case days < 90:
				score += 10
			case days < 365:
				score += 5
			}
		}
	}

	switch days := daysSince(repo.UpdatedAt, now); {
	case days < 30:
		score += 8
	case days < 90:
		score += 5
	case days < 365:
		score += 2
	}

	if m.Commits > 100 {
		score += 5
	}
	if m.Commits > 500 {
		score += 5
	}
	if repo.Homepage != "" {
		score += 8
	}
	if repo.SizeKB > 100 && repo.SizeKB < 50000 {
		score += 3
	}
	if popularLanguages[repo.Language] {
		score += 2
	}
	return score
}

// daysSince returns the whole days elapsed from t to now, rounded down.
func daysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

func summarize(candidates []domain.ScoredRepository) domain.ScoreSummary {
	if len(candidates) == 0 {
		return domain.ScoreSummary{}
	}
	data := make(stats.Float64Data, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, float64(c.Score))
	}
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)
	return domain.ScoreSummary{Mean: mean, Median: median, P90: p90}
}
