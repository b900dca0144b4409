package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"NewsDigest/internal/categorize"
	"NewsDigest/internal/config"
	"NewsDigest/internal/filter"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/render"
)

// PipelineDeps wires all driven adapters into the digest pipeline.
type PipelineDeps struct {
	Source      ports.ItemSource
	ChatClient  ports.ChatClient
	Categorizer *categorize.Categorizer
	Notifier    ports.Notifier
	Digest      config.DigestConfig
	Logger      *slog.Logger
}

// Pipeline implements the digest workflow: collect, filter, shorten,
// categorize, render.
type Pipeline struct {
	source      ports.ItemSource
	chatClient  ports.ChatClient
	categorizer *categorize.Categorizer
	notifier    ports.Notifier
	digest      config.DigestConfig
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:      deps.Source,
		chatClient:  deps.ChatClient,
		categorizer: deps.Categorizer,
		notifier:    deps.Notifier,
		digest:      deps.Digest,
		logger:      deps.Logger,
	}
}

// ProcessDay executes one full digest run ending at now. Errors from the
// model collaborators never surface here; only collection and output
// failures abort the run.
func (p *Pipeline) ProcessDay(ctx context.Context, now time.Time) error {
	if p.source == nil {
		return nil
	}

	items, err := p.source.FetchWindow(ctx, now)
	if err != nil {
		return fmt.Errorf("collect items: %w", err)
	}
	p.info("collected items", "count", len(items))

	items = filter.Deduplicate(items)
	p.info("after deduplication", "count", len(items))

	items = filter.LimitPapers(items, p.digest.PaperMarker, p.digest.PaperLimit)
	p.info("after limiting papers", "count", len(items))

	items = p.shortify(ctx, items)

	if p.categorizer != nil {
		items = p.categorizer.Categorize(ctx, items)
	}

	markdown := render.ToMarkdown(items, p.digest.Categories)

	if p.digest.OutputPath != "" {
		if err := os.WriteFile(p.digest.OutputPath, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("write digest %s: %w", p.digest.OutputPath, err)
		}
		p.info("digest written", "path", p.digest.OutputPath, "items", len(items))
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, markdown); err != nil {
			return fmt.Errorf("publish digest: %w", err)
		}
	}

	return nil
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
