package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/recollect/internal/chunk"
)

// WriteJSON writes the whole-collection document to path.
func WriteJSON(path string, doc Document) error {
	return writeJSONFile(path, doc)
}

// ChunkFileName returns the artifact name for a 1-based chunk ordinal.
// Three digits keep shell globs sorted up to 999 chunks; ordinals past
// that widen naturally and still parse.
func ChunkFileName(prefix string, index int) string {
	return fmt.Sprintf("%s_chunk_%03d.json", prefix, index)
}

// WriteChunks writes one JSON document per chunk into dir and returns the
// paths written. The chunk set is a single artifact: the first failed file
// aborts the remainder of the set.
func WriteChunks(dir, prefix string, chunks []chunk.Chunk, run RunInfo) ([]string, error) {
	paths := make([]string, 0, len(chunks))
	for _, c := range chunks {
		path := filepath.Join(dir, ChunkFileName(prefix, c.Meta.Index))
		if err := writeJSONFile(path, ComposeChunk(c, run)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeJSONFile writes v as indented JSON. HTML escaping is off so URLs
// stay readable in the artifacts.
func writeJSONFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
