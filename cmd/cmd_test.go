package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/naka-gawa/profile-readme/internal/config"
	"github.com/naka-gawa/profile-readme/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_MissingTokenAbortsBeforeWork(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("PROFILE_README_TOKEN", "")

	path := filepath.Join(t.TempDir(), "README.md")
	original := []byte("# Hi\n\n---\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"update", "--user", "octo", "--readme", path, "--api-url", "http://127.0.0.1:1/"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, config.ErrMissingToken)
	assert.Empty(t, out.String())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestRenderRanking(t *testing.T) {
	ranking := &domain.Ranking{
		Top: []domain.ScoredRepository{{
			Repository: domain.Repository{Name: "api", Stars: 3, Forks: 1, UpdatedAt: time.Now()},
			Metrics:    domain.Metrics{Contributors: 2, Releases: []domain.Release{{TagName: "v1"}}},
			Score:      42,
		}},
		Candidates: 4,
		Summary:    domain.ScoreSummary{Mean: 15, Median: 17, P90: 30},
	}

	out := renderRanking(ranking)
	assert.Contains(t, out, "🏆 Top ranked projects:")
	assert.Contains(t, out, "1. api (Score: ")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "⭐ 3 stars | 🔀 1 forks | 👥 2 contributors | 🚀 1 releases")
	assert.Contains(t, out, "4 candidates, mean 15.0, median 17.0, p90 30.0")
}

func TestRenderRanking_Empty(t *testing.T) {
	out := renderRanking(&domain.Ranking{})
	assert.Contains(t, out, "no repository scored high enough")
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("top", config.DefaultTop, "")
	flags.String("api-url", config.DefaultAPIURL, "")

	bound := viper.New()
	require.NoError(t, bindFlags(bound, flags, map[string]string{"top": "top", "api_url": "api-url"}))
	require.NoError(t, flags.Parse([]string{"--top", "9", "--api-url", "https://ghe.example.com/api/v3"}))
	assert.Equal(t, 9, bound.GetInt("top"))
	assert.Equal(t, "https://ghe.example.com/api/v3", bound.GetString("api_url"))

	err := bindFlags(viper.New(), flags, map[string]string{"top": "tpo"})
	assert.ErrorContains(t, err, "flag --tpo is not defined")
}
