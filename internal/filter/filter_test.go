package filter

import (
	"testing"
	"time"

	"NewsDigest/internal/domain"
)

func at(hour int) time.Time {
	return time.Date(2024, time.January, 1, hour, 0, 0, 0, time.UTC)
}

func TestDeduplicateEmpty(t *testing.T) {
	t.Parallel()

	if got := Deduplicate(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d items", len(got))
	}
}

func TestDeduplicateKeepsNewest(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "a", Source: "old", PublishedAt: at(10)},
		{ID: "a", Source: "new", PublishedAt: at(12)},
		{ID: "b", PublishedAt: at(11)},
	}

	got := Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].Source != "new" {
		t.Fatalf("newest duplicate not kept first: %+v", got[0])
	}
	if got[1].ID != "b" {
		t.Fatalf("unexpected second item: %+v", got[1])
	}
}

func TestDeduplicateOrdersByRecency(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "c", PublishedAt: at(8)},
		{ID: "a", PublishedAt: at(12)},
		{ID: "b", PublishedAt: at(10)},
	}

	got := Deduplicate(items)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestDeduplicateUniqueIDs(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "a", PublishedAt: at(10)},
		{ID: "a", PublishedAt: at(12)},
		{ID: "a", PublishedAt: at(11)},
		{ID: "b", PublishedAt: at(9)},
		{ID: "b", PublishedAt: at(13)},
	}

	got := Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}

	seen := map[string]time.Time{}
	for _, item := range got {
		if _, dup := seen[item.ID]; dup {
			t.Fatalf("duplicate id %s in output", item.ID)
		}
		seen[item.ID] = item.PublishedAt
	}

	if !seen["a"].Equal(at(12)) || !seen["b"].Equal(at(13)) {
		t.Fatalf("maximum published not kept: %v", seen)
	}
}

func TestLimitPapersCapsMatchingSources(t *testing.T) {
	t.Parallel()

	var items []domain.Item
	for i := 0; i < 5; i++ {
		items = append(items, domain.Item{ID: string(rune('a' + i)), Source: "Hugging Face Papers", PublishedAt: at(20 - i)})
	}
	items = append(items, domain.Item{ID: "news", Source: "TechCrunch AI", PublishedAt: at(5)})

	got := LimitPapers(items, "Papers", 3)

	papers := 0
	keptNews := false
	for _, item := range got {
		if item.Source == "Hugging Face Papers" {
			papers++
		}
		if item.ID == "news" {
			keptNews = true
		}
	}

	if papers != 3 {
		t.Fatalf("expected 3 papers, got %d", papers)
	}
	if !keptNews {
		t.Fatalf("non-matching item dropped")
	}
}

func TestLimitPapersKeepsNewestPapers(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "oldest", Source: "Papers", PublishedAt: at(8)},
		{ID: "newest", Source: "Papers", PublishedAt: at(12)},
		{ID: "middle", Source: "Papers", PublishedAt: at(10)},
	}

	got := LimitPapers(items, "Papers", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "newest" || got[1].ID != "middle" {
		t.Fatalf("unexpected survivors: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestLimitPapersPreservesOrder(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "a", Source: "TechCrunch AI", PublishedAt: at(12)},
		{ID: "b", Source: "Papers", PublishedAt: at(11)},
		{ID: "c", Source: "VentureBeat AI", PublishedAt: at(10)},
	}

	got := LimitPapers(items, "Papers", 7)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}
