package extract

// Entry is the denormalized per-URL record the whole pipeline operates on:
// the urls row joined with its visit history and any search terms, plus the
// derived domain and category. Entries are built once during assembly and
// never mutated afterwards.
type Entry struct {
	ID                 int64    `json:"id"`
	URL                string   `json:"url"`
	Title              string   `json:"title"`
	VisitCount         int      `json:"visit_count"`
	TypedCount         int      `json:"typed_count"`
	LastVisitTime      string   `json:"last_visit_time"`
	LastVisitTimestamp int64    `json:"last_visit_timestamp"`
	Domain             string   `json:"domain"`
	Visits             []Visit  `json:"visits"`
	SearchTerms        []string `json:"search_terms"`
	Category           string   `json:"category"`
}

// Visit is one visit event belonging to an entry. Duration and Transition
// are carried as the browser stored them; a zero or negative duration means
// the browser did not record one.
type Visit struct {
	VisitTime      string `json:"visit_time"`
	VisitTimestamp int64  `json:"visit_timestamp"`
	Duration       int64  `json:"duration"`
	Transition     int64  `json:"transition"`
	Referrer       string `json:"referrer"`
}
