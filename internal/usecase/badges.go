package usecase

import "github.com/naka-gawa/profile-readme/internal/domain"

// minBadgeUsage filters out technologies seen only in passing.
const minBadgeUsage = 2

// Categorize turns accumulated usage into per-category badge lists, most used first.
// Technologies below minBadgeUsage or without a known badge are left out.
func Categorize(usage *domain.TechUsage) domain.BadgeSet {
	set := make(domain.BadgeSet)
	for _, tc := range usage.Ranked() {
		if tc.Count < minBadgeUsage {
			continue
		}
		badge, ok := domain.LookupBadge(tc.Technology)
		if !ok {
			continue
		}
		set[badge.Category] = append(set[badge.Category], badge.Markdown)
	}
	return set
}
