package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWS_DIGEST_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PAPER_LIMIT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if len(cfg.Digest.Categories) != 6 {
		t.Fatalf("expected 6 default categories, got %d", len(cfg.Digest.Categories))
	}
	if cfg.Digest.DefaultCategory != "Industry & Business" {
		t.Fatalf("unexpected default category: %s", cfg.Digest.DefaultCategory)
	}
	if cfg.Digest.PaperLimit != 7 {
		t.Fatalf("unexpected paper limit: %d", cfg.Digest.PaperLimit)
	}
	if cfg.Digest.Window() != 24*time.Hour {
		t.Fatalf("unexpected freshness window: %s", cfg.Digest.Window())
	}
	if len(cfg.Feeds) == 0 {
		t.Fatalf("default feeds missing")
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
scheduler:
  cronExpression: "0 6 * * *"
  timezone: "UTC"
digest:
  paperLimit: 3
  outputPath: "digest.md"
feeds:
  - name: "Only Feed"
    url: "https://example.com/feed"
    category: "Breaking News"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NEWS_DIGEST_CONFIG", path)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PAPER_LIMIT", "5")

	cfg := Load()

	if cfg.Scheduler.CronExpression != "0 6 * * *" {
		t.Fatalf("file value not merged: %s", cfg.Scheduler.CronExpression)
	}
	if cfg.Digest.OutputPath != "digest.md" {
		t.Fatalf("file value not merged: %s", cfg.Digest.OutputPath)
	}
	if cfg.ChatGPT.APIKey != "sk-test" {
		t.Fatalf("env override missing: %s", cfg.ChatGPT.APIKey)
	}
	// Env beats file for the paper limit.
	if cfg.Digest.PaperLimit != 5 {
		t.Fatalf("env override missing: %d", cfg.Digest.PaperLimit)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Name != "Only Feed" {
		t.Fatalf("feeds not replaced by file: %+v", cfg.Feeds)
	}
	// Defaults survive for everything the file omits.
	if cfg.Digest.DefaultCategory != "Industry & Business" {
		t.Fatalf("default lost in merge: %s", cfg.Digest.DefaultCategory)
	}
}

func TestSchedulerLocationFallsBackToUTC(t *testing.T) {
	t.Parallel()

	var s SchedulerConfig
	if s.Location().String() != "UTC" {
		t.Fatalf("unexpected location: %s", s.Location())
	}
}
