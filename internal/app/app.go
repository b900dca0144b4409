package app

import (
	"context"
	"log/slog"
	"time"

	"NewsDigest/internal/categorize"
	"NewsDigest/internal/config"
	"NewsDigest/internal/feed"
	"NewsDigest/internal/infrastructure/llm"
	"NewsDigest/internal/infrastructure/scheduler"
	"NewsDigest/internal/infrastructure/telegram"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/scanner"
	"NewsDigest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := scanner.NewRegistry()
	registry.Register(feed.NewRSSScanner(nil, baseLogger.With("component", "scanner.rss")))

	source := feed.NewFeedSource(registry, cfg.Feeds, cfg.Digest.Window(), baseLogger.With("component", "source"))

	var chatClient ports.ChatClient
	if cfg.ChatGPT.APIKey != "" {
		chatClient = llm.NewChatGPTClient(cfg.ChatGPT)
	} else {
		baseLogger.Warn("no OpenAI API key configured, titles stay as-is and categorization uses keyword rules")
	}

	categorizer := categorize.NewCategorizer(cfg.Digest, chatClient, baseLogger.With("component", "categorizer"))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      source,
		ChatClient:  chatClient,
		Categorizer: categorizer,
		Notifier:    notifier,
		Digest:      cfg.Digest,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}
}

// Run executes the pipeline once, or keeps it running on the configured
// cron schedule until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	loc := a.cfg.Scheduler.Location()
	if a.cfg.Scheduler.CronExpression == "" {
		return a.pipeline.ProcessDay(ctx, time.Now().In(loc))
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, loc)
	runner := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := runner.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "timezone", loc.String())

	<-ctx.Done()
	return runner.Stop(context.Background())
}
