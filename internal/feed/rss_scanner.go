package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/mmcdole/gofeed"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/scanner"
)

// RSSScanner collects fresh entries from RSS/Atom feeds. Entries without a
// resolvable timestamp, an empty title, or an empty link never leave it.
type RSSScanner struct {
	parser  *gofeed.Parser
	retries uint64
	logger  *slog.Logger
}

// NewRSSScanner wires an HTTP client; the default carries a 10s timeout.
func NewRSSScanner(client *http.Client, log *slog.Logger) *RSSScanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NewsDigest/1.0 (+https://github.com/news-digest)"

	return &RSSScanner{parser: parser, retries: 2, logger: log}
}

// Name identifies the strategy inside the registry.
func (s *RSSScanner) Name() string {
	return "rss"
}

// Scan walks each configured feed and returns entries published inside the
// freshness window. A failing feed is logged and skipped; one broken feed
// must not lose the rest of the digest.
func (s *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Item, error) {
	cutoff := req.Now.Add(-req.Window)
	s.debug("collecting items", "feeds", len(req.Feeds), "cutoff", cutoff.Format(time.RFC3339))

	var items []domain.Item
	for _, f := range req.Feeds {
		parsed, err := s.fetchWithRetry(ctx, f.URL)
		if err != nil {
			s.warn("feed error", "feed", f.Name, "url", f.URL, "error", err)
			continue
		}

		fresh := 0
		for _, entry := range parsed.Items {
			ts := entryTime(entry)
			if ts == nil || ts.Before(cutoff) {
				continue
			}

			title := CleanTitle(entry.Title)
			link := strings.TrimSpace(entry.Link)
			if title == "" || link == "" {
				continue
			}

			items = append(items, domain.Item{
				ID:          ItemID(link),
				Title:       title,
				Link:        link,
				Source:      f.Name,
				Category:    f.Category,
				PublishedAt: ts.UTC(),
			})
			fresh++
		}
		s.debug("feed scanned", "feed", f.Name, "entries", len(parsed.Items), "fresh", fresh)
	}

	s.debug("scan done", "total_items", len(items))
	return items, nil
}

func (s *RSSScanner) fetchWithRetry(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	var parsed *gofeed.Feed

	operation := func() error {
		var err error
		parsed, err = s.parser.ParseURLWithContext(feedURL, ctx)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return parsed, nil
}

func entryTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}

// CleanTitle strips HTML markup that some feeds embed inside titles.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if !strings.Contains(title, "<") {
		return title
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.TrimSpace(doc.Text())
}

func (s *RSSScanner) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *RSSScanner) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
