package summary

import (
	"sort"

	"github.com/runnerr0/recollect/internal/extract"
)

// topDomainLimit caps the ranked domain list.
const topDomainLimit = 20

// DomainCount pairs a domain with the number of entries that resolve to it.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// DateRange bounds the known last-visit instants of a collection. Both
// fields are empty when no entry has ever been visited.
type DateRange struct {
	Oldest string `json:"oldest"`
	Newest string `json:"newest"`
}

// Summary aggregates one entry collection: corpus totals, the category
// distribution, the most-visited domains and the covered date range.
type Summary struct {
	TotalURLs        int            `json:"total_urls"`
	TotalVisits      int            `json:"total_visits"`
	TotalSearchTerms int            `json:"total_search_terms"`
	Categories       map[string]int `json:"categories"`
	TopDomains       []DomainCount  `json:"top_domains"`
	DateRange        DateRange      `json:"date_range"`
}

// Aggregate computes summary statistics in one pass. Top domains are
// ranked by entry count descending, ties keeping first-seen order, and the
// list is cut at twenty. Date bounds compare the fixed-width ISO strings
// directly, which is equivalent to comparing instants; entries with no
// known last visit are ignored for the range.
func Aggregate(entries []extract.Entry) Summary {
	s := Summary{
		TotalURLs:  len(entries),
		Categories: map[string]int{},
	}

	domainCounts := map[string]int{}
	domainOrder := []string{}

	for i := range entries {
		e := &entries[i]
		s.Categories[e.Category]++
		s.TotalVisits += len(e.Visits)
		s.TotalSearchTerms += len(e.SearchTerms)

		if _, seen := domainCounts[e.Domain]; !seen {
			domainOrder = append(domainOrder, e.Domain)
		}
		domainCounts[e.Domain]++

		if e.LastVisitTime == "" {
			continue
		}
		if s.DateRange.Oldest == "" || e.LastVisitTime < s.DateRange.Oldest {
			s.DateRange.Oldest = e.LastVisitTime
		}
		if e.LastVisitTime > s.DateRange.Newest {
			s.DateRange.Newest = e.LastVisitTime
		}
	}

	ranked := make([]DomainCount, 0, len(domainOrder))
	for _, d := range domainOrder {
		ranked = append(ranked, DomainCount{Domain: d, Count: domainCounts[d]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topDomainLimit {
		ranked = ranked[:topDomainLimit]
	}
	s.TopDomains = ranked

	return s
}
