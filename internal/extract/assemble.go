package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/runnerr0/recollect/internal/history"
)

// defaultTitle stands in for rows the browser stored without a title.
const defaultTitle = "No Title"

// Assemble joins the three raw record streams into denormalized entries.
// Visits and search terms are grouped under their owning url id; records
// that reference an id absent from urls are dropped. URL rows whose url is
// empty or whitespace-only are skipped. Visits keep the order they arrived
// in. The result is sorted by raw last-visit timestamp descending, ties
// keeping source order, so never-visited rows (timestamp zero) sink to the
// end.
func Assemble(urls []history.URLRecord, visits []history.VisitRecord, terms []history.SearchTermRecord) ([]Entry, error) {
	visitsByURL := make(map[int64][]Visit)
	for _, v := range visits {
		visitTime, err := ChromeTime(v.VisitTime)
		if err != nil {
			return nil, fmt.Errorf("visit for url %d: %w", v.URLID, err)
		}
		visitsByURL[v.URLID] = append(visitsByURL[v.URLID], Visit{
			VisitTime:      visitTime,
			VisitTimestamp: v.VisitTime,
			Duration:       v.Duration,
			Transition:     v.Transition,
			Referrer:       v.Referrer,
		})
	}

	termsByURL := make(map[int64][]string)
	for _, t := range terms {
		termsByURL[t.URLID] = append(termsByURL[t.URLID], t.Term)
	}

	entries := make([]Entry, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u.URL) == "" {
			continue
		}

		lastVisit, err := ChromeTime(u.LastVisitTime)
		if err != nil {
			return nil, fmt.Errorf("url %d (%s): %w", u.ID, u.URL, err)
		}

		title := u.Title
		if title == "" {
			title = defaultTitle
		}

		// Empty slices rather than nil so the JSON artifacts always
		// carry arrays.
		entryVisits := visitsByURL[u.ID]
		if entryVisits == nil {
			entryVisits = []Visit{}
		}
		entryTerms := termsByURL[u.ID]
		if entryTerms == nil {
			entryTerms = []string{}
		}

		entries = append(entries, Entry{
			ID:                 u.ID,
			URL:                u.URL,
			Title:              title,
			VisitCount:         u.VisitCount,
			TypedCount:         u.TypedCount,
			LastVisitTime:      lastVisit,
			LastVisitTimestamp: u.LastVisitTime,
			Domain:             ExtractDomain(u.URL),
			Visits:             entryVisits,
			SearchTerms:        entryTerms,
			Category:           Categorize(u.URL, u.Title),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastVisitTimestamp > entries[j].LastVisitTimestamp
	})

	return entries, nil
}

// ExcludeDomains drops entries whose domain exactly matches one of domains,
// preserving order. Matching is case-insensitive; extracted domains are
// already lowercase.
func ExcludeDomains(entries []Entry, domains []string) []Entry {
	if len(domains) == 0 {
		return entries
	}
	excluded := make(map[string]bool, len(domains))
	for _, d := range domains {
		excluded[strings.ToLower(d)] = true
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if excluded[e.Domain] {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
