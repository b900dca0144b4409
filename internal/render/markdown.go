package render

import (
	"fmt"
	"sort"
	"strings"

	"NewsDigest/internal/domain"
)

const (
	digestHeader     = "## Daily AI / LLM Headlines"
	overflowCategory = "Other"
	emptyDigest      = "_No fresh AI headlines in the last 24 h._"
)

// ToMarkdown renders items grouped by category, in the configured category
// order with unrecognized categories collected under Other. Items inside a
// group are newest first, source name breaking ties.
func ToMarkdown(items []domain.Item, categories []string) string {
	if len(items) == 0 {
		return emptyDigest
	}

	known := make(map[string]bool, len(categories))
	for _, category := range categories {
		known[category] = true
	}

	sections := map[string][]domain.Item{}
	for _, item := range items {
		category := item.Category
		if !known[category] {
			category = overflowCategory
		}
		sections[category] = append(sections[category], item)
	}

	lines := []string{digestHeader + "\n"}

	order := make([]string, 0, len(categories)+1)
	order = append(order, categories...)
	order = append(order, overflowCategory)

	for _, category := range order {
		group, ok := sections[category]
		if !ok {
			continue
		}

		lines = append(lines, "### "+category)

		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].PublishedAt.Equal(group[j].PublishedAt) {
				return group[i].PublishedAt.After(group[j].PublishedAt)
			}
			return group[i].Source < group[j].Source
		})

		for _, item := range group {
			lines = append(lines, fmt.Sprintf("- [%s](%s) — %s", strings.TrimSpace(item.Title), item.Link, item.Source))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
