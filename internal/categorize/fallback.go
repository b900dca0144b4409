package categorize

import "strings"

// Category names used by the deterministic fallback rules.
const (
	categoryBreaking  = "Breaking News"
	categoryBusiness  = "Industry & Business"
	categoryTools     = "Tools & Applications"
	categoryResearch  = "Research & Models"
	categoryPolicy    = "Policy & Ethics"
	categoryTutorials = "Tutorials & Insights"
)

// Keyword rules scanned in priority order; the first matching rule wins.
var keywordRules = []struct {
	category string
	keywords []string
}{
	{categoryPolicy, []string{"lawsuit", "court", "legal", "copyright", "safety", "regulation", "ban"}},
	{categoryResearch, []string{"paper", "research", "model", "benchmark", "beats", "arxiv", "study"}},
	{categoryTools, []string{"launch", "release", "tool", "api", "feature", "app", "plugin"}},
	{categoryBusiness, []string{"raise", "funding", "$", "acquire", "valuation", "ipo", "billion", "million"}},
	{categoryTutorials, []string{"how", "guide", "tutorial", "should", "opinion", "why", "lesson"}},
	{categoryBreaking, []string{"announce", "unveil", "reveal", "breaking", "just"}},
}

// fallback assigns a category from the title and source alone. It is total:
// any input yields a member of the configured category set. Paper feeds win
// over every keyword rule.
func (c *Categorizer) fallback(title, source string) string {
	if c.paperMarker != "" && strings.Contains(strings.ToLower(source), strings.ToLower(c.paperMarker)) {
		return categoryResearch
	}

	lowered := strings.ToLower(title)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category
			}
		}
	}

	return c.defaultCategory
}
