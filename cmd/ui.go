package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/profile-readme/internal/domain"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarning.Render("!")+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleInfo.Render("›")+" "+fmt.Sprintf(format, args...))
}

// renderRanking formats the featured projects with their scores and metrics.
func renderRanking(ranking *domain.Ranking) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("🏆 Top ranked projects:") + "\n")
	if len(ranking.Top) == 0 {
		b.WriteString("  " + styleDim.Render("no repository scored high enough") + "\n")
		return b.String()
	}
	for i, repo := range ranking.Top {
		fmt.Fprintf(&b, "  %d. %s (Score: %s)\n", i+1, repo.Name, styleNumber.Render(fmt.Sprint(repo.Score)))
		b.WriteString("     " + styleDim.Render(fmt.Sprintf("⭐ %d stars | 🔀 %d forks | 👥 %d contributors | 🚀 %d releases",
			repo.Stars, repo.Forks, repo.Metrics.Contributors, len(repo.Metrics.Releases))) + "\n")
	}
	s := ranking.Summary
	b.WriteString("  " + styleDim.Render(fmt.Sprintf("%d candidates, mean %.1f, median %.1f, p90 %.1f",
		ranking.Candidates, s.Mean, s.Median, s.P90)) + "\n")
	return b.String()
}
