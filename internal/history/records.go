package history

// URLRecord mirrors one row of the urls table. Hidden rows and rows with an
// empty url column are filtered out at query time and never reach callers.
type URLRecord struct {
	ID            int64
	URL           string
	Title         string
	VisitCount    int
	TypedCount    int
	LastVisitTime int64
}

// VisitRecord mirrors one row of the visits table. URLID comes from the
// visits.url column, which despite its name holds the owning urls.id.
type VisitRecord struct {
	URLID      int64
	VisitTime  int64
	Duration   int64
	Transition int64
	Referrer   string
}

// SearchTermRecord associates one typed search term with its owning url id.
type SearchTermRecord struct {
	URLID int64
	Term  string
}

// Snapshot holds the three record streams of one read pass. Visits arrive
// ordered newest-first; search terms carry no meaningful order.
type Snapshot struct {
	URLs        []URLRecord
	Visits      []VisitRecord
	SearchTerms []SearchTermRecord
}
