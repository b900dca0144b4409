package ports

import (
	"context"
	"time"

	"NewsDigest/internal/domain"
)

// ItemSource pulls fresh headlines from upstream feeds.
type ItemSource interface {
	FetchWindow(ctx context.Context, now time.Time) ([]domain.Item, error)
}

// ChatClient sends a prompt to an LLM API and returns the raw response text.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers the rendered digest to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
