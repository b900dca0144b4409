// Package filter holds the pure item-reduction stages that run between
// collection and categorization: URL-identity deduplication and the
// paper-feed volume cap.
package filter

import (
	"sort"
	"strings"

	"NewsDigest/internal/domain"
)

// Deduplicate keeps only the newest item for each ID. The result is ordered
// by published time descending; ties keep their original relative order.
func Deduplicate(items []domain.Item) []domain.Item {
	sorted := sortByRecency(items)

	seen := make(map[string]struct{}, len(sorted))
	out := make([]domain.Item, 0, len(sorted))
	for _, item := range sorted {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// LimitPapers caps how many items from high-volume paper feeds survive,
// keeping the newest ones. Items whose source does not contain the marker
// pass through untouched, in recency order.
func LimitPapers(items []domain.Item, marker string, limit int) []domain.Item {
	sorted := sortByRecency(items)
	if marker == "" {
		return sorted
	}

	papers := 0
	out := make([]domain.Item, 0, len(sorted))
	for _, item := range sorted {
		if strings.Contains(item.Source, marker) {
			if papers >= limit {
				continue
			}
			papers++
		}
		out = append(out, item)
	}
	return out
}

func sortByRecency(items []domain.Item) []domain.Item {
	sorted := make([]domain.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	return sorted
}
