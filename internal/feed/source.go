package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/scanner"
)

const defaultScanner = "rss"

// FeedSource implements ItemSource via registered scanner strategies.
type FeedSource struct {
	registry *scanner.Registry
	feeds    []config.FeedConfig
	window   time.Duration
	logger   *slog.Logger
}

var _ ports.ItemSource = (*FeedSource)(nil)

// NewFeedSource wires the scanner registry with config-defined feeds.
func NewFeedSource(reg *scanner.Registry, feeds []config.FeedConfig, window time.Duration, log *slog.Logger) *FeedSource {
	return &FeedSource{
		registry: reg,
		feeds:    feeds,
		window:   window,
		logger:   log,
	}
}

// FetchWindow groups configured feeds by scanner strategy and aggregates
// everything published inside the freshness window ending at now.
func (s *FeedSource) FetchWindow(ctx context.Context, now time.Time) ([]domain.Item, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch window", "feeds", len(s.feeds), "window", s.window.String())

	grouped := map[string][]scanner.Feed{}
	var order []string
	for _, f := range s.feeds {
		name := f.Scanner
		if name == "" {
			name = defaultScanner
		}
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], scanner.Feed{
			Name:     f.Name,
			URL:      f.URL,
			Category: f.Category,
		})
	}

	var aggregated []domain.Item
	for _, name := range order {
		strategy, err := s.registry.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("feeds with scanner %s: %w", name, err)
		}

		req := scanner.Request{
			Now:    now,
			Window: s.window,
			Feeds:  grouped[name],
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan %s feeds: %w", name, err)
		}

		s.debug("scanner produced items", "scanner", name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("feed source done", "total_items", len(aggregated))
	return aggregated, nil
}

func (s *FeedSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
