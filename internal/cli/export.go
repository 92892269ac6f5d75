package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/runnerr0/recollect/internal/chunk"
	"github.com/runnerr0/recollect/internal/config"
	"github.com/runnerr0/recollect/internal/extract"
	"github.com/runnerr0/recollect/internal/history"
	"github.com/runnerr0/recollect/internal/output"
	"github.com/runnerr0/recollect/internal/summary"
)

// exportSettings is the fully resolved plan for one export run, after
// flags, config file, and defaults have been merged.
type exportSettings struct {
	dbPath         string
	outDir         string
	prefix         string
	chunked        bool
	maxTokens      int
	estimatorName  string
	estimator      chunk.Estimator
	sinceMicros    int64
	writeCSV       bool
	writeStats     bool
	excludeDomains []string
}

// exportReportJSON is the machine-readable run report printed with --json.
type exportReportJSON struct {
	Version         string   `json:"version"`
	ExtractionID    string   `json:"extraction_id"`
	Entries         int      `json:"entries"`
	Visits          int      `json:"visits"`
	SearchTerms     int      `json:"search_terms"`
	Chunks          int      `json:"chunks,omitempty"`
	Files           []string `json:"files"`
	FailedArtifacts []string `json:"failed_artifacts,omitempty"`
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)

	settings, err := c.resolveSettings(cfg)
	if err != nil {
		return err
	}

	reader, err := history.Open(settings.dbPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	return c.executeWithReader(reader, settings)
}

// resolveSettings merges flags over the config file. Chunk-size and
// estimator problems surface here, before the database is touched.
func (c *ExportCommand) resolveSettings(cfg *config.Config) (*exportSettings, error) {
	s := &exportSettings{
		outDir:         cfg.Output.Dir,
		prefix:         cfg.Output.Prefix,
		chunked:        cfg.Chunking.Enabled,
		maxTokens:      cfg.Chunking.MaxTokens,
		estimatorName:  cfg.Chunking.Estimator,
		writeCSV:       cfg.Output.CSV,
		writeStats:     cfg.Output.Statistics,
		excludeDomains: cfg.Filter.ExcludeDomains,
	}

	var err error
	if s.dbPath, err = resolveDBPath(c.globals, cfg); err != nil {
		return nil, err
	}

	if c.Out != "" {
		s.outDir = c.Out
	}
	if s.outDir, err = config.ExpandPath(s.outDir); err != nil {
		return nil, err
	}
	if c.Prefix != "" {
		s.prefix = c.Prefix
	}

	if c.ChunkSize != "" {
		if s.maxTokens, err = ParseChunkSize(c.ChunkSize); err != nil {
			return nil, err
		}
	}
	if c.NoChunks {
		s.chunked = false
	}
	if s.chunked && s.maxTokens <= 0 {
		return nil, fmt.Errorf("%w: configured max_tokens is %d", ErrInvalidChunkSize, s.maxTokens)
	}

	if c.Estimator != "" {
		s.estimatorName = c.Estimator
	}
	if s.estimator, err = newEstimator(s.estimatorName); err != nil {
		return nil, err
	}

	if c.Since != "" {
		d, err := parseDuration(c.Since)
		if err != nil {
			return nil, err
		}
		s.sinceMicros = extract.ChromeMicros(time.Now().Add(-d))
	}

	if c.SkipCSV {
		s.writeCSV = false
	}
	if c.SkipStats {
		s.writeStats = false
	}
	if c.ExcludeSensitive {
		s.excludeDomains = append(append([]string{}, s.excludeDomains...), config.SensitiveDomains()...)
	}

	return s, nil
}

// executeWithReader runs the export against a provided reader (for testing).
func (c *ExportCommand) executeWithReader(reader *history.Reader, s *exportSettings) error {
	ctx := context.Background()
	start := time.Now()

	runID := uuid.NewString()
	logger := log.With().Str("extraction_id", runID).Logger()

	logger.Info().Str("db", s.dbPath).Msg("reading history database")
	snap, err := reader.ReadAll(ctx, history.Options{SinceMicros: s.sinceMicros})
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	logger.Debug().
		Int("urls", len(snap.URLs)).
		Int("visits", len(snap.Visits)).
		Int("search_terms", len(snap.SearchTerms)).
		Msg("record streams loaded")

	entries, err := extract.Assemble(snap.URLs, snap.Visits, snap.SearchTerms)
	if err != nil {
		return fmt.Errorf("assemble entries: %w", err)
	}
	if len(s.excludeDomains) > 0 {
		before := len(entries)
		entries = extract.ExcludeDomains(entries, s.excludeDomains)
		logger.Info().Int("excluded", before-len(entries)).Msg("domain exclusions applied")
	}
	logger.Info().Int("entries", len(entries)).Msg("entries assembled")

	sum := summary.Aggregate(entries)
	run := output.RunInfo{
		ExtractionID:   runID,
		ExtractionDate: extract.FormatInstant(time.Now()),
	}

	var chunks []chunk.Chunk
	if s.chunked {
		if chunks, err = chunk.Plan(entries, s.maxTokens, s.estimator); err != nil {
			return fmt.Errorf("plan chunks: %w", err)
		}
		logger.Info().
			Int("chunks", len(chunks)).
			Int("max_tokens", s.maxTokens).
			Str("estimator", s.estimatorName).
			Msg("chunks planned")
		for _, ch := range chunks {
			if ch.Meta.Oversized {
				logger.Warn().Int("chunk", ch.Meta.Index).Msg(ch.Meta.Note)
			}
		}
	}

	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Each artifact is attempted even when an earlier one fails; the run
	// reports everything it could write and still exits non-zero.
	var files, failed []string
	artifact := func(name string, write func() ([]string, error)) {
		paths, err := write()
		files = append(files, paths...)
		if err != nil {
			logger.Error().Err(err).Str("artifact", name).Msg("write failed")
			failed = append(failed, name)
			return
		}
		logger.Debug().Str("artifact", name).Msg("written")
	}

	if s.chunked {
		artifact("chunked JSON", func() ([]string, error) {
			return output.WriteChunks(s.outDir, s.prefix, chunks, run)
		})
	} else {
		artifact("JSON", func() ([]string, error) {
			path := filepath.Join(s.outDir, s.prefix+".json")
			if err := output.WriteJSON(path, output.Compose(entries, run)); err != nil {
				return nil, err
			}
			return []string{path}, nil
		})
	}
	if s.writeCSV {
		artifact("CSV", func() ([]string, error) {
			path := filepath.Join(s.outDir, s.prefix+".csv")
			if err := output.WriteCSV(path, entries); err != nil {
				return nil, err
			}
			return []string{path}, nil
		})
	}
	if s.writeStats {
		artifact("statistics", func() ([]string, error) {
			path := filepath.Join(s.outDir, s.prefix+"_statistics.json")
			if err := output.WriteStatistics(path, sum); err != nil {
				return nil, err
			}
			return []string{path}, nil
		})
	}

	logger.Info().Dur("elapsed", time.Since(start)).Int("files", len(files)).Msg("export finished")

	if c.globals != nil && c.globals.JSON {
		if err := c.printReportJSON(runID, sum, len(chunks), files, failed); err != nil {
			return err
		}
	} else {
		c.printReportHuman(s, sum, len(chunks), files)
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to write: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (c *ExportCommand) printReportHuman(s *exportSettings, sum summary.Summary, chunkCount int, files []string) {
	fmt.Println("History Export")
	fmt.Println("==============")
	fmt.Printf("Source:        %s\n", s.dbPath)
	fmt.Printf("Entries:       %s\n", formatNumber(int64(sum.TotalURLs)))
	fmt.Printf("Visits:        %s\n", formatNumber(int64(sum.TotalVisits)))
	fmt.Printf("Search terms:  %s\n", formatNumber(int64(sum.TotalSearchTerms)))
	if sum.DateRange.Oldest != "" {
		fmt.Printf("Range:         %s to %s\n", sum.DateRange.Oldest[:10], sum.DateRange.Newest[:10])
	}
	if s.chunked {
		fmt.Printf("Chunks:        %d (budget %s tokens, %s)\n", chunkCount, formatNumber(int64(s.maxTokens)), s.estimatorName)
	}

	if len(sum.Categories) > 0 {
		fmt.Println()
		fmt.Println("Categories:")
		for _, name := range sortedCategoryNames(sum.Categories) {
			fmt.Printf("  %-22s %s\n", name, formatNumber(int64(sum.Categories[name])))
		}
	}

	fmt.Println()
	fmt.Println("Files:")
	if len(files) == 0 {
		fmt.Println("  (none)")
	}
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
}

func (c *ExportCommand) printReportJSON(runID string, sum summary.Summary, chunkCount int, files, failed []string) error {
	report := exportReportJSON{
		Version:         c.version,
		ExtractionID:    runID,
		Entries:         sum.TotalURLs,
		Visits:          sum.TotalVisits,
		SearchTerms:     sum.TotalSearchTerms,
		Chunks:          chunkCount,
		Files:           files,
		FailedArtifacts: failed,
	}
	if report.Files == nil {
		report.Files = []string{}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
