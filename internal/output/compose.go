package output

import (
	"sort"

	"github.com/runnerr0/recollect/internal/chunk"
	"github.com/runnerr0/recollect/internal/extract"
)

// RunInfo identifies one extraction run. Every artifact of a run carries
// the same id and instant, so downstream consumers can group files that
// belong together.
type RunInfo struct {
	ExtractionID   string
	ExtractionDate string
}

// Metadata is the envelope at the head of every JSON artifact. The chunk
// fields are present only in chunked documents.
type Metadata struct {
	TotalEntries    int      `json:"total_entries"`
	ExtractionDate  string   `json:"extraction_date"`
	ExtractionID    string   `json:"extraction_id"`
	Categories      []string `json:"categories"`
	ChunkIndex      int      `json:"chunk_index,omitempty"`
	TotalChunks     int      `json:"total_chunks,omitempty"`
	EstimatedTokens int      `json:"estimated_tokens,omitempty"`
	Oversized       bool     `json:"oversized,omitempty"`
	OversizeWarning string   `json:"oversize_warning,omitempty"`
}

// Document pairs a metadata envelope with the entries it describes.
type Document struct {
	Metadata Metadata        `json:"metadata"`
	History  []extract.Entry `json:"history"`
}

// Compose builds the envelope for a whole-collection document.
func Compose(entries []extract.Entry, run RunInfo) Document {
	return Document{
		Metadata: Metadata{
			TotalEntries:   len(entries),
			ExtractionDate: run.ExtractionDate,
			ExtractionID:   run.ExtractionID,
			Categories:     distinctCategories(entries),
		},
		History: entries,
	}
}

// ComposeChunk builds the envelope for one chunk of a chunked run. The
// shared fields describe the chunk's own entries, so each file stands on
// its own.
func ComposeChunk(c chunk.Chunk, run RunInfo) Document {
	return Document{
		Metadata: Metadata{
			TotalEntries:    c.Meta.EntryCount,
			ExtractionDate:  run.ExtractionDate,
			ExtractionID:    run.ExtractionID,
			Categories:      distinctCategories(c.Entries),
			ChunkIndex:      c.Meta.Index,
			TotalChunks:     c.Meta.TotalChunks,
			EstimatedTokens: c.Meta.EstimatedTokens,
			Oversized:       c.Meta.Oversized,
			OversizeWarning: c.Meta.Note,
		},
		History: c.Entries,
	}
}

// distinctCategories returns the sorted set of labels observed. Sorted so
// repeated runs over the same data produce identical files.
func distinctCategories(entries []extract.Entry) []string {
	seen := map[string]bool{}
	for i := range entries {
		seen[entries[i].Category] = true
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
