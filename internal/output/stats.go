package output

import "github.com/runnerr0/recollect/internal/summary"

// WriteStatistics writes the aggregate summary as its own artifact, so
// consumers can inspect the corpus without loading any entry file.
func WriteStatistics(path string, s summary.Summary) error {
	return writeJSONFile(path, s)
}
