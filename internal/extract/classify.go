package extract

import "strings"

// CategoryOther is the fallback label for entries no rule claims.
const CategoryOther = "Other"

// rule is one classification rule: an entry lands in label when its domain
// contains any domain keyword, or its lowercased title contains any title
// keyword.
type rule struct {
	label          string
	domainKeywords []string
	titleKeywords  []string
}

// categoryRules is evaluated in order; the first match wins, so earlier
// rules shadow later ones (a github.com/shop URL is Development & Tech,
// never Shopping). The keyword lists are part of the output contract:
// downstream consumers depend on the existing category distribution, so
// entries stay in the list even when they look too broad, and the two
// path-bearing keywords are kept although a bare domain can never contain
// a slash.
var categoryRules = []rule{
	{
		label: "Development & Tech",
		domainKeywords: []string{
			"github", "stackoverflow", "dev.to", "medium", "hackernews",
			"reddit.com/r/programming", "docs.", "api.", "developer",
		},
	},
	{
		label: "Learning & Education",
		domainKeywords: []string{
			"coursera", "udemy", "pluralsight", "youtube", "khan",
			"edx", "harvard", "mit", "university",
		},
		titleKeywords: []string{"tutorial", "course", "learn", "education"},
	},
	{
		label: "Work & Productivity",
		domainKeywords: []string{
			"slack", "notion", "trello", "jira", "confluence",
			"office", "google.com/drive", "dropbox",
		},
	},
	{
		label: "News & Information",
		domainKeywords: []string{
			"news", "bbc", "cnn", "reuters", "techcrunch", "ars-technica",
		},
	},
	{
		label: "Social Media",
		domainKeywords: []string{
			"facebook", "twitter", "linkedin", "instagram", "tiktok",
		},
	},
	{
		label: "Shopping",
		domainKeywords: []string{
			"amazon", "ebay", "shop", "store", "buy", "market",
		},
	},
	{
		label: "Entertainment",
		domainKeywords: []string{
			"netflix", "spotify", "twitch", "gaming", "entertainment",
		},
	},
}

// ExtractDomain pulls the host segment out of a URL with a split-based
// heuristic instead of a full parser, so malformed history rows still
// classify: scheme-prefixed URLs take the segment after the double slash,
// anything else the segment before the first slash. Input that yields no
// segment at all maps to "unknown".
func ExtractDomain(rawURL string) string {
	const unknown = "unknown"

	var segment string
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		parts := strings.Split(rawURL, "/")
		if len(parts) < 3 {
			return unknown
		}
		segment = parts[2]
	} else {
		segment = strings.Split(rawURL, "/")[0]
	}
	if segment == "" {
		return unknown
	}
	return strings.ToLower(segment)
}

// Categorize assigns exactly one category label to a URL/title pair by
// substring matching against the rule table. Matching is deliberately
// broad: "buy.example.org" and "hypermarket.io" both land in Shopping.
func Categorize(rawURL, title string) string {
	domain := ExtractDomain(rawURL)
	titleLower := strings.ToLower(title)
	for _, r := range categoryRules {
		if containsAny(domain, r.domainKeywords) || containsAny(titleLower, r.titleKeywords) {
			return r.label
		}
	}
	return CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
