package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/profile-readme/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        log.New(io.Discard),
	}

	return gateway, server
}

func TestGitHubGateway_FetchRepositories(t *testing.T) {
	testCases := []struct {
		name          string
		secondPage    func(w http.ResponseWriter)
		expectedNames []string
		expectSkipped bool
	}{
		{
			name: "happy path - stops at the empty page",
			secondPage: func(w http.ResponseWriter) {
				fmt.Fprint(w, `[]`)
			},
			expectedNames: []string{"alpha", "beta"},
		},
		{
			name: "partial result - second page fails",
			secondPage: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedNames: []string{"alpha", "beta"},
			expectSkipped: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var pages []string
			handler := func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octo/repos", r.URL.Path)
				page := r.URL.Query().Get("page")
				pages = append(pages, page)
				switch page {
				case "1":
					fmt.Fprint(w, `[
						{"name": "alpha", "owner": {"login": "octo"}, "stargazers_count": 4, "fork": false, "updated_at": "2026-01-02T03:04:05Z"},
						{"name": "beta", "fork": true, "archived": true, "homepage": "https://beta.dev", "size": 120}
					]`)
				case "2":
					tc.secondPage(w)
				default:
					t.Errorf("unexpected page %q", page)
					fmt.Fprint(w, `[]`)
				}
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			listing := gateway.FetchRepositories(context.Background(), "octo")

			var names []string
			for _, repo := range listing.Repositories {
				names = append(names, repo.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, []string{"1", "2"}, pages)
			assert.Equal(t, !tc.expectSkipped, listing.Complete())
			if tc.expectSkipped {
				require.Len(t, listing.Skipped, 1)
				assert.Equal(t, "page 2", listing.Skipped[0].Unit)
			}

			alpha := listing.Repositories[0]
			assert.Equal(t, "octo", alpha.Owner)
			assert.Equal(t, 4, alpha.Stars)
			assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), alpha.UpdatedAt.UTC())

			beta := listing.Repositories[1]
			assert.Equal(t, "octo", beta.Owner, "owner falls back to the requested user")
			assert.True(t, beta.Fork)
			assert.True(t, beta.Archived)
			assert.Equal(t, "https://beta.dev", beta.Homepage)
			assert.Equal(t, 120, beta.SizeKB)
		})
	}
}

func TestGitHubGateway_FetchFile(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"dependencies": {"react": "^18.0.0"}}`))
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/app/contents/package.json":
			fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`, encoded)
		case "/repos/octo/app/contents/Dockerfile":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message": "boom"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	content, err := gateway.FetchFile(context.Background(), "octo", "app", "package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"dependencies": {"react": "^18.0.0"}}`, content)

	_, err = gateway.FetchFile(context.Background(), "octo", "app", "go.mod")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = gateway.FetchFile(context.Background(), "octo", "app", "Dockerfile")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get contents of Dockerfile")
}

func TestGitHubGateway_RepositoryMetrics(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/app/languages":
			fmt.Fprint(w, `{"Go": 12000, "Shell": 300}`)
		case "/repos/octo/app/releases":
			assert.Equal(t, "5", r.URL.Query().Get("per_page"))
			fmt.Fprint(w, `[{"tag_name": "v1.2.0", "published_at": "2026-09-01T00:00:00Z", "html_url": "https://github.com/octo/app/releases/v1.2.0"}]`)
		case "/repos/octo/app/contributors":
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			fmt.Fprint(w, `[{"login": "octo", "contributions": 120}, {"login": "hubot", "contributions": 30}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()
	ctx := context.Background()

	languages, err := gateway.FetchLanguages(ctx, "octo", "app")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 12000, "Shell": 300}, languages)

	releases, err := gateway.FetchReleases(ctx, "octo", "app")
	require.NoError(t, err)
	assert.Equal(t, []domain.Release{{
		TagName:     "v1.2.0",
		PublishedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		HTMLURL:     "https://github.com/octo/app/releases/v1.2.0",
	}}, normalizeReleases(releases))

	contributors, err := gateway.FetchContributors(ctx, "octo", "app")
	require.NoError(t, err)
	assert.Equal(t, []domain.Contributor{{Login: "octo", Contributions: 120}, {Login: "hubot", Contributions: 30}}, contributors)

	_, err = gateway.FetchLanguages(ctx, "octo", "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list languages")
}

func TestGitHubGateway_FetchProfile(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       *domain.Profile
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"user":{"login":"octo","name":"Octo Cat","repositories":{"totalCount":42}}}}`,
			expected:     &domain.Profile{Login: "octo", Name: "Octo Cat", PublicRepositories: 42},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Could not resolve to a User"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for profile",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "user(login: $login)")
				assert.Contains(t, string(body), `"login":"octo"`)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			profile, err := gateway.FetchProfile(context.Background(), "octo")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, profile)
			}
		})
	}
}

func normalizeReleases(releases []domain.Release) []domain.Release {
	for i := range releases {
		releases[i].PublishedAt = releases[i].PublishedAt.UTC()
	}
	return releases
}

func TestNewGitHubGateway_Endpoints(t *testing.T) {
	logger := log.New(io.Discard)

	fetcher, err := NewGitHubGateway("token", Endpoints{APIURL: "https://ghe.example.com/api/v3"}, logger)
	require.NoError(t, err)
	gw, ok := fetcher.(*GitHubGateway)
	require.True(t, ok)
	assert.Equal(t, "https://ghe.example.com/api/v3/", gw.restClient.BaseURL.String())

	_, err = NewGitHubGateway("", Endpoints{APIURL: "://bad"}, logger)
	assert.ErrorContains(t, err, "invalid API URL")
}
