package chunk

import (
	"errors"
	"fmt"

	"github.com/runnerr0/recollect/internal/extract"
)

// ErrInvalidLimit reports a non-positive token limit.
var ErrInvalidLimit = errors.New("max tokens per chunk must be positive")

// Meta describes one planned chunk.
type Meta struct {
	Index           int    // 1-based, in emission order
	TotalChunks     int    // back-filled once planning completes
	EntryCount      int
	EstimatedTokens int
	Oversized       bool
	Note            string
}

// Chunk is an ordered group of entries whose combined estimate fits the
// planning limit, except for flagged single-entry oversize chunks.
type Chunk struct {
	Entries []extract.Entry
	Meta    Meta
}

// Plan partitions entries, in order, into chunks holding at most maxTokens
// estimated tokens. Packing is greedy: each entry goes into the current
// chunk if it fits, otherwise the chunk is sealed and a new one starts. An
// entry whose own estimate exceeds the limit is never split; it becomes a
// single-entry chunk flagged oversized. Concatenating the chunks in order
// reproduces the input exactly.
func Plan(entries []extract.Entry, maxTokens int, est Estimator) ([]Chunk, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLimit, maxTokens)
	}

	chunks := []Chunk{}
	var current []extract.Entry
	currentTokens := 0

	seal := func(oversized bool, note string) {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Entries: current,
			Meta: Meta{
				Index:           len(chunks) + 1,
				EntryCount:      len(current),
				EstimatedTokens: currentTokens,
				Oversized:       oversized,
				Note:            note,
			},
		})
		current = nil
		currentTokens = 0
	}

	for i := range entries {
		size := est.EstimateTokens(&entries[i])
		switch {
		case size > maxTokens:
			seal(false, "")
			current = append(current, entries[i])
			currentTokens = size
			seal(true, fmt.Sprintf("entry %d alone is estimated at %d tokens, over the %d limit", entries[i].ID, size, maxTokens))
		case len(current) > 0 && currentTokens+size > maxTokens:
			seal(false, "")
			current = append(current, entries[i])
			currentTokens = size
		default:
			current = append(current, entries[i])
			currentTokens += size
		}
	}
	seal(false, "")

	for i := range chunks {
		chunks[i].Meta.TotalChunks = len(chunks)
	}

	return chunks, nil
}
