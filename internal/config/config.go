package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "NEWS_DIGEST_CONFIG"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	paperLimitEnv     = "PAPER_LIMIT"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Digest        DigestConfig       `yaml:"digest"`
	Notifications NotificationConfig `yaml:"notifications"`
	Feeds         []FeedConfig       `yaml:"feeds"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines when the digest should run. An empty cron
// expression means a single run per invocation.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// DigestConfig carries item-processing settings: the category set, the
// paper-feed volume cap, duplicate-detection inputs, and the output target.
type DigestConfig struct {
	Categories      []string `yaml:"categories"`
	DefaultCategory string   `yaml:"defaultCategory"`
	PaperMarker     string   `yaml:"paperMarker"`
	PaperLimit      int      `yaml:"paperLimit"`
	FreshnessHours  int      `yaml:"freshnessHours"`
	Companies       []string `yaml:"companies"`
	OutputPath      string   `yaml:"outputPath"`
}

// Window returns the freshness window as a duration, defaulting to 24 h.
func (d DigestConfig) Window() time.Duration {
	hours := d.FreshnessHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// FeedConfig describes a single feed endpoint with its scanner strategy
// and the category hint attached to collected items.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Scanner  string `yaml:"scanner"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.ChatGPT.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(paperLimitEnv); v != "" {
		if limit, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s=%q: %v (keeping %d)", paperLimitEnv, v, err, c.Digest.PaperLimit)
		} else {
			c.Digest.PaperLimit = limit
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if len(override.Digest.Categories) > 0 {
		base.Digest.Categories = override.Digest.Categories
	}
	if override.Digest.DefaultCategory != "" {
		base.Digest.DefaultCategory = override.Digest.DefaultCategory
	}
	if override.Digest.PaperMarker != "" {
		base.Digest.PaperMarker = override.Digest.PaperMarker
	}
	if override.Digest.PaperLimit > 0 {
		base.Digest.PaperLimit = override.Digest.PaperLimit
	}
	if override.Digest.FreshnessHours > 0 {
		base.Digest.FreshnessHours = override.Digest.FreshnessHours
	}
	if len(override.Digest.Companies) > 0 {
		base.Digest.Companies = override.Digest.Companies
	}
	if override.Digest.OutputPath != "" {
		base.Digest.OutputPath = override.Digest.OutputPath
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{CronExpression: "", Timezone: defaultTimezone, location: tz},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You categorize and condense AI news headlines.",
		},
		Digest: DigestConfig{
			Categories: []string{
				"Breaking News",
				"Industry & Business",
				"Tools & Applications",
				"Research & Models",
				"Policy & Ethics",
				"Tutorials & Insights",
			},
			DefaultCategory: "Industry & Business",
			PaperMarker:     "Papers",
			PaperLimit:      7,
			FreshnessHours:  24,
			Companies: []string{
				"openai",
				"google",
				"microsoft",
				"meta",
				"anthropic",
				"amazon",
				"nvidia",
				"apple",
				"ibm",
				"deepmind",
				"hugging face",
				"stability",
				"mistral",
				"cohere",
			},
			OutputPath: "news.md",
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Feeds: []FeedConfig{
			{
				Name:     "TechCrunch AI",
				URL:      "https://techcrunch.com/category/artificial-intelligence/feed/",
				Category: "Industry & Business",
			},
			{
				Name:     "VentureBeat AI",
				URL:      "https://venturebeat.com/category/ai/feed/",
				Category: "Industry & Business",
			},
			{
				Name:     "Hugging Face Papers",
				URL:      "https://huggingface.co/papers/rss",
				Category: "Research & Models",
			},
			{
				Name:     "MIT Technology Review AI",
				URL:      "https://www.technologyreview.com/topic/artificial-intelligence/feed",
				Category: "Research & Models",
			},
		},
	}
}
