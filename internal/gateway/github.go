// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/profile-readme/internal/domain"
)

const (
	reposPerPage        = 100
	releasesPerPage     = 5
	contributorsPerPage = 100
)

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRepositories pages through the user's repositories. It never fails:
	// a failed page ends pagination and is reported in the listing's Skipped.
	FetchRepositories(ctx context.Context, user string) *domain.RepositoryListing
	FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	// FetchFile returns the decoded content of a file, or ErrNotFound.
	FetchFile(ctx context.Context, owner, repo, path string) (string, error)
	FetchReleases(ctx context.Context, owner, repo string) ([]domain.Release, error)
	FetchContributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error)
	FetchProfile(ctx context.Context, user string) (*domain.Profile, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// profileQuery looks up the owner and the number of public repositories they own.
type profileQuery struct {
	User struct {
		Login        string
		Name         string
		Repositories struct {
			TotalCount int
		} `graphql:"repositories(privacy: PUBLIC, ownerAffiliations: [OWNER])"`
	} `graphql:"user(login: $login)"`
}

// Endpoints overrides the API locations, e.g. for GitHub Enterprise. Empty fields keep github.com.
type Endpoints struct {
	APIURL     string
	GraphQLURL string
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client.
func NewGitHubGateway(token string, endpoints Endpoints, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	if endpoints.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(endpoints.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", endpoints.APIURL, err)
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if endpoints.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(endpoints.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) *domain.RepositoryListing {
	g.logger.Info("Fetching repositories...", "user", user)
	listing := &domain.RepositoryListing{}
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: reposPerPage}}
	for page := 1; ; page++ {
		opts.Page = page
		repos, _, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			g.logger.Warn("Stopped paginating repositories", "page", page, "err", err)
			listing.Skipped = append(listing.Skipped, domain.Skip{
				Unit: fmt.Sprintf("page %d", page),
				Err:  fmt.Errorf("failed to list repositories with REST API: %w", err),
			})
			break
		}
		if len(repos) == 0 {
			break
		}
		for _, repo := range repos {
			listing.Repositories = append(listing.Repositories, toRepository(repo, user))
		}
		g.logger.Debug("  Fetched page of repositories", "page", page, "count", len(repos))
	}
	g.logger.Info("Completed fetching repositories.", "count", len(listing.Repositories))
	return listing
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (g *GitHubGateway) FetchFile(ctx context.Context, owner, repo, path string) (string, error) {
	file, _, resp, err := g.restClient.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get contents of %s: %w", path, err)
	}
	if file == nil || file.GetType() != "file" {
		return "", fmt.Errorf("%s is not a file: %w", path, ErrNotFound)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode contents of %s: %w", path, err)
	}
	return content, nil
}

// FetchReleases returns the newest releases, first page only.
func (g *GitHubGateway) FetchReleases(ctx context.Context, owner, repo string) ([]domain.Release, error) {
	releases, _, err := g.restClient.Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: releasesPerPage})
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	result := make([]domain.Release, 0, len(releases))
	for _, r := range releases {
		result = append(result, domain.Release{
			TagName:     r.GetTagName(),
			PublishedAt: r.GetPublishedAt().Time,
			HTMLURL:     r.GetHTMLURL(),
		})
	}
	return result, nil
}

// FetchContributors returns the first page of contributors.
func (g *GitHubGateway) FetchContributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error) {
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: contributorsPerPage}}
	contributors, _, err := g.restClient.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	result := make([]domain.Contributor, 0, len(contributors))
	for _, c := range contributors {
		result = append(result, domain.Contributor{
			Login:         c.GetLogin(),
			Contributions: c.GetContributions(),
		})
	}
	return result, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, user string) (*domain.Profile, error) {
	var q profileQuery
	variables := map[string]interface{}{"login": githubv4.String(user)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for profile: %w", err)
	}
	return &domain.Profile{
		Login:              q.User.Login,
		Name:               q.User.Name,
		PublicRepositories: q.User.Repositories.TotalCount,
	}, nil
}

func toRepository(r *github.Repository, user string) domain.Repository {
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = user
	}
	return domain.Repository{
		Name:        r.GetName(),
		Owner:       owner,
		Fork:        r.GetFork(),
		Archived:    r.GetArchived(),
		Private:     r.GetPrivate(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Watchers:    r.GetWatchersCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
		Language:    r.GetLanguage(),
		Homepage:    r.GetHomepage(),
		SizeKB:      r.GetSize(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
	}
}
