package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/profile-readme/internal/domain"
	"github.com/naka-gawa/profile-readme/internal/gateway"
	"github.com/naka-gawa/profile-readme/internal/manifest"
)

const (
	// bytesPerPoint converts a language's byte count into usage points.
	bytesPerPoint = 1000
	// maxLanguagePoints caps what one repository can add to a single language.
	maxLanguagePoints = 10

	// JavaScript repositories also credit the runtime at half weight.
	runtimeLanguage   = "JavaScript"
	runtimeTechnology = "Node.js"
)

// Detector infers technology usage from language histograms and manifest files.
type Detector struct {
	fetcher   gateway.Fetcher
	analyzers []manifest.Analyzer
	logger    *log.Logger
}

// NewDetector creates a Detector that checks every supported manifest.
func NewDetector(fetcher gateway.Fetcher, logger *log.Logger) *Detector {
	return &Detector{
		fetcher:   fetcher,
		analyzers: manifest.Analyzers(),
		logger:    logger,
	}
}

// Detect adds the usage found in repos to usage and returns it with the units
// that had to be skipped. Forks and archived repositories are ignored.
// A cancelled context stops the scan before the next repository.
// A nil usage starts a fresh aggregate.
func (d *Detector) Detect(ctx context.Context, repos []domain.Repository, usage *domain.TechUsage) *domain.Detection {
	if usage == nil {
		usage = domain.NewTechUsage()
	}
	detection := &domain.Detection{Usage: usage}
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			d.logger.Debug("Detection interrupted", "err", err)
			break
		}
		if !repo.Active() {
			continue
		}
		d.logger.Debug("Analyzing repository", "repo", repo.Name)
		d.detectLanguages(ctx, repo, detection)
		d.detectManifests(ctx, repo, detection)
	}
	return detection
}

func (d *Detector) detectLanguages(ctx context.Context, repo domain.Repository, detection *domain.Detection) {
	languages, err := d.fetcher.FetchLanguages(ctx, repo.Owner, repo.Name)
	if err != nil {
		d.skip(detection, repo, "languages", err)
		return
	}

	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		weight := min(languages[name]/bytesPerPoint, maxLanguagePoints)
		detection.Usage.Add(name, weight)
		if name == runtimeLanguage {
			detection.Usage.Add(runtimeTechnology, weight/2)
		}
	}
}

func (d *Detector) detectManifests(ctx context.Context, repo domain.Repository, detection *domain.Detection) {
	for _, analyzer := range d.analyzers {
		name := analyzer.Filename()
		content, err := d.fetcher.FetchFile(ctx, repo.Owner, repo.Name, name)
		if errors.Is(err, gateway.ErrNotFound) {
			continue
		}
		if err != nil {
			d.skip(detection, repo, name, err)
			continue
		}
		hits, err := analyzer.Analyze(content)
		if err != nil {
			d.skip(detection, repo, name, err)
			continue
		}
		for _, hit := range hits {
			detection.Usage.Add(hit.Technology, hit.Weight)
		}
	}
}

func (d *Detector) skip(detection *domain.Detection, repo domain.Repository, unit string, err error) {
	d.logger.Warn("Skipped", "repo", repo.Name, "unit", unit, "err", err)
	detection.Skipped = append(detection.Skipped, domain.Skip{Repository: repo.Name, Unit: unit, Err: err})
}
