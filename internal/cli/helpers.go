package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/recollect/internal/chunk"
	"github.com/runnerr0/recollect/internal/config"
)

// loadConfig resolves the effective configuration. An explicit --config
// path must load cleanly; otherwise the default location is used, created
// with defaults on first run.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// resolveDBPath determines the history database path.
// Priority: --db flag > config file.
func resolveDBPath(globals *GlobalFlags, cfg *config.Config) (string, error) {
	path := cfg.Source.Path
	if globals != nil && globals.DB != "" {
		path = globals.DB
	}
	return config.ExpandPath(path)
}

// newEstimator maps an estimator name from config or flag to an
// implementation.
func newEstimator(name string) (chunk.Estimator, error) {
	switch name {
	case "", "heuristic":
		return chunk.HeuristicEstimator{}, nil
	case "cl100k":
		return chunk.NewTiktokenEstimator()
	default:
		return nil, fmt.Errorf("unknown estimator %q (use heuristic or cl100k)", name)
	}
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
		if len(s) > remainder {
			result.WriteString(",")
		}
	}
	for i := remainder; i < len(s); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatVisitDuration renders a visit duration stored in microseconds.
func formatVisitDuration(micros int64) string {
	d := time.Duration(micros) * time.Microsecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// sortedCategoryNames returns category labels in alphabetical order for
// stable human-readable listings.
func sortedCategoryNames(categories map[string]int) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
