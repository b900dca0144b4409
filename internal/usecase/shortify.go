package usecase

import (
	"context"
	"fmt"
	"strings"

	"NewsDigest/internal/domain"
)

// shortify rewrites each headline in at most ten words via the chat client.
// It runs between the volume limiter and categorization so the prompt sent
// to the model already carries the shortened titles. Without a client it is
// a no-op; per-item failures keep the original title.
func (p *Pipeline) shortify(ctx context.Context, items []domain.Item) []domain.Item {
	if p.chatClient == nil || len(items) == 0 {
		return items
	}

	shortened := 0
	for i := range items {
		prompt := fmt.Sprintf("Rewrite this headline in 10 words or fewer, keep the core idea:\n%s", items[i].Title)

		text, err := p.chatClient.Complete(ctx, prompt)
		if err != nil {
			p.warn("shortify failed", "title", items[i].Title, "error", err)
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			items[i].Title = text
			shortened++
		}
	}

	p.info("shortified titles", "count", shortened, "total", len(items))
	return items
}
