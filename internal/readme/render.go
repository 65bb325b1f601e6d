package readme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/naka-gawa/profile-readme/internal/domain"
)

const (
	// TechStackHeading marks the managed technology section.
	TechStackHeading = "## 🛠️ Technology Stack"
	// FeaturedHeading marks the managed project section.
	FeaturedHeading = "## 🌟 Featured Projects"

	analyticsHeading = "## 📊 GitHub Analytics"
	monthLayout      = "Jan 2006"
)

// RenderTechStack builds the technology section with one subsection per non-empty category.
func RenderTechStack(badges domain.BadgeSet) string {
	var b strings.Builder
	b.WriteString(TechStackHeading + "\n\n")
	b.WriteString("*🔄 Automatically updated based on repository analysis*\n\n")
	b.WriteString("<!-- This section is auto-generated by analyzing all repositories -->\n")
	for _, c := range domain.Categories {
		list := badges[c]
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n%s\n\n", c.Title(), strings.Join(list, "\n"))
	}
	return b.String()
}

// RenderFeatured builds the numbered project section in ranking order.
func RenderFeatured(top []domain.ScoredRepository) string {
	var b strings.Builder
	b.WriteString(FeaturedHeading + "\n\n")
	b.WriteString("*🔄 Automatically ranked by contributions, releases, stars, and activity*\n\n")
	for i, repo := range top {
		fmt.Fprintf(&b, "### %d. [%s](%s)\n%s\n\n", i+1, repo.Name, repo.HTMLURL, descriptionLine(repo.Description))

		if badges := projectBadges(repo); len(badges) > 0 {
			b.WriteString(strings.Join(badges, " ") + "\n\n")
		}
		if info := projectInfo(repo); len(info) > 0 {
			b.WriteString(strings.Join(info, "\n") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// descriptionLine folds a description onto one line and escapes a leading
// marker, so it can never read as a heading or a rule and end the section early.
func descriptionLine(description string) string {
	description = strings.Join(strings.Fields(description), " ")
	if description == "" {
		return "No description available"
	}
	if strings.HasPrefix(description, "#") || strings.HasPrefix(description, "-") {
		return `\` + description
	}
	return description
}

func flat(alt, label, color string) string {
	return "![" + alt + "](https://img.shields.io/badge/" + label + "-" + color + "?style=flat-square)"
}

func projectBadges(repo domain.ScoredRepository) []string {
	var badges []string
	if repo.Language != "" {
		badges = append(badges, flat(repo.Language, "-"+repo.Language, "blue"))
	}
	if repo.Stars > 0 {
		badges = append(badges, flat("Stars", "⭐-"+strconv.Itoa(repo.Stars), "yellow"))
	}
	if repo.Forks > 0 {
		badges = append(badges, flat("Forks", "🔀-"+strconv.Itoa(repo.Forks), "green"))
	}
	if n := repo.Metrics.Contributors; n > 1 {
		badges = append(badges, flat("Contributors", "👥-"+strconv.Itoa(n), "purple"))
	}
	if n := len(repo.Metrics.Releases); n > 0 {
		badges = append(badges, flat("Releases", "🚀-"+strconv.Itoa(n)+"_releases", "orange"))
	}
	if n := repo.Metrics.Commits; n > 0 {
		commits := strconv.Itoa(n)
		if n > 100 {
			commits += "+"
		}
		badges = append(badges, flat("Commits", "📝-"+commits+"_commits", "lightgrey"))
	}
	return badges
}

func projectInfo(repo domain.ScoredRepository) []string {
	var info []string
	if latest, ok := repo.Metrics.LatestRelease(); ok {
		tag := latest.TagName
		if tag == "" {
			tag = "Unknown"
		}
		line := fmt.Sprintf("📦 **Latest Release:** [%s](%s)", tag, latest.HTMLURL)
		if !latest.PublishedAt.IsZero() {
			line += " (" + latest.PublishedAt.UTC().Format(monthLayout) + ")"
		}
		info = append(info, line)
	}
	if repo.Homepage != "" {
		info = append(info, fmt.Sprintf("🌐 **Live Demo:** [%s](%s)", repo.Homepage, repo.Homepage))
	}
	if !repo.UpdatedAt.IsZero() {
		info = append(info, "🔄 **Last Updated:** "+repo.UpdatedAt.UTC().Format(monthLayout))
	}
	return info
}
