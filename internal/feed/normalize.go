package feed

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// Query parameter names stripped before hashing. Matched case-insensitively
// by name; values of the remaining parameters are kept verbatim.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"source":       {},
	"fbclid":       {},
	"gclid":        {},
	"mc_cid":       {},
	"mc_eid":       {},
}

// NormalizeURL canonicalizes a link so the same story hashes to the same
// identity: lowercase scheme and host, no www. prefix, no trailing path
// slash (except a bare "/"), no tracking parameters, no fragment.
// Unparseable input is returned unchanged.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")

	path := parsed.Path
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	var query string
	if parsed.RawQuery != "" {
		if values, qErr := url.ParseQuery(parsed.RawQuery); qErr == nil {
			filtered := url.Values{}
			for name, vals := range values {
				if _, tracked := trackingParams[strings.ToLower(name)]; tracked {
					continue
				}
				filtered[name] = vals
			}
			query = filtered.Encode()
		} else {
			query = filterRawQuery(parsed.RawQuery)
		}
	}

	rebuilt := url.URL{
		Scheme:   strings.ToLower(parsed.Scheme),
		Host:     host,
		Path:     path,
		RawQuery: query,
	}
	return rebuilt.String()
}

// filterRawQuery drops tracking pairs from a query string that failed
// strict parsing (semicolon separators, broken percent-escapes). Tracking
// parameters must not survive even in malformed input; the remaining pairs
// are kept verbatim, joined with "&".
func filterRawQuery(raw string) string {
	pairs := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == ';'
	})

	kept := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name := pair
		if i := strings.Index(pair, "="); i >= 0 {
			name = pair[:i]
		}
		if _, tracked := trackingParams[strings.ToLower(name)]; tracked {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

// ItemID derives the stable identity hash for a link. Two links that
// normalize to the same URL describe the same story.
func ItemID(link string) string {
	sum := sha1.Sum([]byte(NormalizeURL(link)))
	return hex.EncodeToString(sum[:])
}
