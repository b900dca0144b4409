package categorize

import (
	"regexp"
	"sort"
	"strings"

	"NewsDigest/internal/domain"
)

const (
	reasonKeywordDuplicate = "keyword duplicate"
	reasonDuplicateTopic   = "duplicate topic"

	keywordFingerprintSize = 5
	topicFingerprintSize   = 3
	minSignificantWords    = 3
)

// Common connectives and generic report verbs that carry no topic signal.
var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {},
	"will": {}, "been": {}, "into": {}, "over": {}, "more": {},
	"than": {}, "about": {}, "their": {}, "says": {}, "said": {},
	"after": {}, "report": {}, "reports": {}, "announces": {},
	"announced": {}, "reveals": {}, "claims": {},
}

var wordExpr = regexp.MustCompile(`[a-z0-9]+`)

// significantWords extracts lowercased alphanumeric tokens longer than
// three characters, minus stop words, in title order.
func significantWords(title string) []string {
	var words []string
	for _, word := range wordExpr.FindAllString(strings.ToLower(title), -1) {
		if len(word) <= 3 {
			continue
		}
		if _, stopped := stopWords[word]; stopped {
			continue
		}
		words = append(words, word)
	}
	return words
}

func fingerprintKey(words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// markDuplicates runs two fingerprint passes over items not already
// excluded. The first occurrence of a fingerprint keeps its item; later
// occurrences are marked excluded. Fingerprint tables live only for the
// duration of one run.
func (c *Categorizer) markDuplicates(items []domain.Item) []domain.Item {
	seenKeywords := map[string]struct{}{}
	for i := range items {
		if items[i].Excluded {
			continue
		}

		words := significantWords(items[i].Title)
		if len(words) < minSignificantWords {
			continue
		}
		if len(words) > keywordFingerprintSize {
			words = words[:keywordFingerprintSize]
		}

		key := fingerprintKey(words)
		if _, ok := seenKeywords[key]; ok {
			items[i].Excluded = true
			items[i].ExcludeReason = reasonKeywordDuplicate
			continue
		}
		seenKeywords[key] = struct{}{}
	}

	seenTopics := map[string]struct{}{}
	for i := range items {
		if items[i].Excluded {
			continue
		}

		lowered := strings.ToLower(items[i].Title)
		for _, company := range c.companies {
			if !strings.Contains(lowered, company) {
				continue
			}

			words := significantWords(items[i].Title)
			if len(words) > topicFingerprintSize {
				words = words[:topicFingerprintSize]
			}

			key := company + "|" + fingerprintKey(words)
			if _, ok := seenTopics[key]; ok {
				items[i].Excluded = true
				items[i].ExcludeReason = reasonDuplicateTopic
			} else {
				seenTopics[key] = struct{}{}
			}

			// Only the first matching company name per title contributes.
			break
		}
	}

	return items
}
