package categorize

import (
	"testing"

	"NewsDigest/internal/domain"
)

func TestSignificantWords(t *testing.T) {
	t.Parallel()

	got := significantWords("OpenAI says it will Ship a new Reasoning model")
	want := []string{"openai", "ship", "reasoning", "model"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMarkDuplicatesKeywordFingerprint(t *testing.T) {
	t.Parallel()

	c := NewCategorizer(digestConfig(), nil, nil)

	items := []domain.Item{
		{Title: "Gemini beats GPT benchmark results"},
		{Title: "Benchmark results: Gemini beats GPT"},
		{Title: "Completely different headline about robotics funding"},
	}

	got := c.markDuplicates(items)

	if got[0].Excluded {
		t.Fatalf("first occurrence must be kept")
	}
	if !got[1].Excluded || got[1].ExcludeReason != "keyword duplicate" {
		t.Fatalf("reworded duplicate not excluded: %+v", got[1])
	}
	if got[2].Excluded {
		t.Fatalf("unrelated item excluded: %+v", got[2])
	}
}

func TestMarkDuplicatesTooFewSignificantWords(t *testing.T) {
	t.Parallel()

	c := NewCategorizer(digestConfig(), nil, nil)

	// Two significant words each; no fingerprint, nothing excluded.
	items := []domain.Item{
		{Title: "Big AI chip sale"},
		{Title: "Sale of big AI chip"},
	}

	got := c.markDuplicates(items)
	for i, item := range got {
		if item.Excluded {
			t.Fatalf("item %d excluded without a fingerprint: %+v", i, item)
		}
	}
}

func TestMarkDuplicatesCompanyTopic(t *testing.T) {
	t.Parallel()

	c := NewCategorizer(digestConfig(), nil, nil)

	items := []domain.Item{
		{Title: "Google Gemini update improves coding"},
		{Title: "Google Gemini update ships widely"},
	}

	got := c.markDuplicates(items)

	if got[0].Excluded {
		t.Fatalf("first company story must be kept")
	}
	if !got[1].Excluded || got[1].ExcludeReason != "duplicate topic" {
		t.Fatalf("same company topic not excluded: %+v", got[1])
	}
}

func TestMarkDuplicatesFirstCompanyOnly(t *testing.T) {
	t.Parallel()

	c := NewCategorizer(digestConfig(), nil, nil)

	// Both titles mention two companies; only the first match (openai, via
	// config order) contributes a key, and the topics differ.
	items := []domain.Item{
		{Title: "OpenAI partners with Google cloud platform"},
		{Title: "OpenAI delays Google competitor product reveal"},
	}

	got := c.markDuplicates(items)
	for i, item := range got {
		if item.Excluded {
			t.Fatalf("item %d wrongly excluded: %+v", i, item)
		}
	}
}

func TestMarkDuplicatesSkipsAlreadyExcluded(t *testing.T) {
	t.Parallel()

	c := NewCategorizer(digestConfig(), nil, nil)

	items := []domain.Item{
		{Title: "Gemini beats GPT benchmark results", Excluded: true, ExcludeReason: "duplicate"},
		{Title: "Benchmark results: Gemini beats GPT"},
	}

	got := c.markDuplicates(items)

	// The excluded item contributes no fingerprint, so the second copy is
	// now the first occurrence and survives.
	if got[1].Excluded {
		t.Fatalf("first non-excluded occurrence must be kept: %+v", got[1])
	}
	if !got[0].Excluded || got[0].ExcludeReason != "duplicate" {
		t.Fatalf("pre-existing exclusion altered: %+v", got[0])
	}
}
