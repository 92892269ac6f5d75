package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/runnerr0/recollect/internal/extract"
)

// csvHeader is the flattened per-entry layout spreadsheet review expects.
var csvHeader = []string{
	"id", "url", "title", "domain", "category",
	"visit_count", "typed_count", "last_visit_time",
	"total_visits", "search_terms",
}

// WriteCSV writes the flat per-entry view: one row per entry, visit detail
// reduced to a count, search terms joined with "; ".
func WriteCSV(path string, entries []extract.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write %s header: %w", path, err)
	}
	for i := range entries {
		e := &entries[i]
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.URL,
			e.Title,
			e.Domain,
			e.Category,
			strconv.Itoa(e.VisitCount),
			strconv.Itoa(e.TypedCount),
			e.LastVisitTime,
			strconv.Itoa(len(e.Visits)),
			strings.Join(e.SearchTerms, "; "),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s row: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
