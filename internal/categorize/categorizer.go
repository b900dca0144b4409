package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const skipMarker = "SKIP"

// Drops list numbering ("1. ", "2) ", "- ") the model sometimes prepends.
var lineNumberExpr = regexp.MustCompile(`^[\s0-9.\-)]+`)

// Categorizer assigns a final category to every item by combining an
// external model's response with deterministic keyword rules and
// fingerprint-based duplicate suppression.
type Categorizer struct {
	chat            ports.ChatClient
	categories      []string
	defaultCategory string
	paperMarker     string
	companies       []string
	logger          *slog.Logger
}

// NewCategorizer builds the orchestration component. A nil chat client is
// valid and degrades every run to the keyword fallback.
func NewCategorizer(cfg config.DigestConfig, chat ports.ChatClient, log *slog.Logger) *Categorizer {
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = []string{
			categoryBreaking,
			categoryBusiness,
			categoryTools,
			categoryResearch,
			categoryPolicy,
			categoryTutorials,
		}
	}

	defaultCategory := cfg.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = categoryBusiness
	}

	companies := make([]string, 0, len(cfg.Companies))
	for _, company := range cfg.Companies {
		companies = append(companies, strings.ToLower(company))
	}

	return &Categorizer{
		chat:            chat,
		categories:      categories,
		defaultCategory: defaultCategory,
		paperMarker:     cfg.PaperMarker,
		companies:       companies,
		logger:          log,
	}
}

// Categorize produces the final categorized collection: every surviving
// item carries exactly one category and all exclusion markers are consumed.
// Any failure of the external model degrades to the fallback rules; nothing
// in this stage aborts the run.
func (c *Categorizer) Categorize(ctx context.Context, items []domain.Item) []domain.Item {
	if len(items) == 0 {
		return items
	}

	if c.chat == nil {
		c.info("no chat client configured, using fallback categorization", "items", len(items))
		return c.fallbackAll(items)
	}

	response, err := c.chat.Complete(ctx, c.buildPrompt(items))
	if err != nil {
		c.warn("categorization request failed, using fallback", "error", err)
		return c.fallbackAll(items)
	}

	lines := splitLines(response)
	if len(lines) != len(items) {
		c.warn("response line count mismatch", "lines", len(lines), "items", len(items))
	}

	for i := range items {
		if i < len(lines) {
			c.applyLine(&items[i], lines[i])
		} else {
			items[i].Category = c.fallback(items[i].Title, items[i].Source)
		}
	}

	items = c.markDuplicates(items)

	kept := make([]domain.Item, 0, len(items))
	excluded := 0
	for _, item := range items {
		if item.Excluded {
			c.debug("item excluded", "title", item.Title, "reason", item.ExcludeReason)
			excluded++
			continue
		}
		kept = append(kept, item)
	}

	c.info("categorization done", "kept", len(kept), "excluded", excluded)
	c.logDistribution(kept)
	return kept
}

// fallbackAll categorizes every item deterministically, with no exclusions.
func (c *Categorizer) fallbackAll(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].Category = c.fallback(out[i].Title, out[i].Source)
	}
	return out
}

// applyLine interprets one response line for the item at the same position:
// a SKIP token excludes the item as a duplicate, a recognized category name
// assigns it, anything else falls back to the keyword rules.
func (c *Categorizer) applyLine(item *domain.Item, line string) {
	cleaned := strings.TrimSpace(lineNumberExpr.ReplaceAllString(line, ""))

	if strings.Contains(strings.ToUpper(cleaned), skipMarker) {
		item.Excluded = true
		item.ExcludeReason = "duplicate"
		return
	}

	lowered := strings.ToLower(cleaned)
	for _, category := range c.categories {
		if strings.Contains(lowered, strings.ToLower(category)) {
			item.Category = category
			return
		}
	}

	c.debug("unrecognized category line, using fallback", "line", cleaned)
	item.Category = c.fallback(item.Title, item.Source)
}

func (c *Categorizer) buildPrompt(items []domain.Item) string {
	var b strings.Builder

	b.WriteString("Categorize these AI news items.\n\n")
	b.WriteString("STEP 1: FIND DUPLICATES\n")
	b.WriteString("These are the SAME story if they describe the same event:\n")
	b.WriteString("- \"Company X wins case\" = \"Judge rules for Company X\" = \"Court favors Company X\"\n")
	b.WriteString("- \"Product Y launched\" = \"Company releases Product Y\" = \"New Product Y available\"\n\n")
	b.WriteString("STEP 2: CATEGORIZE using exactly one of these names:\n")
	for _, category := range c.categories {
		fmt.Fprintf(&b, "- %s\n", category)
	}
	b.WriteString("\nItems:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, item.Title, item.Source)
	}
	fmt.Fprintf(&b, "\nOUTPUT: One line per item (%d lines total). ", len(items))
	b.WriteString("Write ONLY the category name OR write SKIP for duplicates.\n")
	b.WriteString("NO NUMBERS. NO PUNCTUATION. Just the category or SKIP.\n")

	return b.String()
}

func (c *Categorizer) logDistribution(items []domain.Item) {
	distribution := map[string]int{}
	for _, item := range items {
		distribution[item.Category]++
	}
	c.info("category distribution", "categories", fmt.Sprintf("%v", distribution))
}

func splitLines(response string) []string {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func (c *Categorizer) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Categorizer) info(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Categorizer) warn(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
