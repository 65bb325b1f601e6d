// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/profile-readme/internal/domain"
	"github.com/naka-gawa/profile-readme/internal/gateway"
)

// Aggregator is the use case for analyzing a user's repositories.
// It orchestrates fetching, technology detection, badge categorization and ranking.
type Aggregator struct {
	fetcher  gateway.Fetcher
	detector *Detector
	ranker   *Ranker
	logger   *log.Logger
}

// NewAggregator creates a new Aggregator instance featuring at most limit repositories.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, limit int) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		detector: NewDetector(fetcher, logger),
		ranker:   NewRanker(fetcher, logger, limit),
		logger:   logger,
	}
}

// WithClock sets the time source used for recency scoring.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.ranker.WithClock(now)
	return a
}

// Aggregate performs the main business logic.
// Every step runs sequentially and degrades to partial data on failure; only
// a cancelled context aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, user string) (*domain.Report, error) {
	report := &domain.Report{User: user}

	profile, err := a.fetcher.FetchProfile(ctx, user)
	if err != nil {
		a.logger.Warn("Profile lookup failed, continuing without it", "err", err)
	} else {
		report.Profile = profile
		a.logger.Info("Analyzing profile", "login", profile.Login, "name", profile.Name)
	}

	listing := a.fetcher.FetchRepositories(ctx, user)
	report.Repositories = len(listing.Repositories)
	report.Listing = listing.Skipped
	a.logger.Infof("Found %d repositories", len(listing.Repositories))
	if profile != nil && profile.PublicRepositories > len(listing.Repositories) {
		a.logger.Warn("Repository listing is incomplete", "listed", len(listing.Repositories), "expected", profile.PublicRepositories)
	}
	for i, repo := range listing.Repositories {
		if i == previewLimit {
			break
		}
		a.logger.Debugf("  %d. %s (%s)", i+1, repo.Name, languageOrUnknown(repo.Language))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Info("Analyzing technologies...")
	report.Detection = a.detector.Detect(ctx, listing.Repositories, domain.NewTechUsage())
	a.logger.Debug("Detected technologies", "usage", report.Detection.Usage.Ranked())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Info("Generating badges...")
	report.Badges = Categorize(report.Detection.Usage)
	for _, c := range domain.Categories {
		if n := len(report.Badges[c]); n > 0 {
			a.logger.Debugf("  %s: %d badges", c.Key(), n)
		}
	}

	a.logger.Info("Finding popular repositories...")
	report.Ranking = a.ranker.Rank(ctx, listing.Repositories)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Infof("Found %d featured projects", len(report.Ranking.Top))

	return report, nil
}

func languageOrUnknown(language string) string {
	if language == "" {
		return "Unknown"
	}
	return language
}
