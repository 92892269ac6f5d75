package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/recollect/internal/config"
	"github.com/runnerr0/recollect/internal/extract"
	"github.com/runnerr0/recollect/internal/history"
	"github.com/runnerr0/recollect/internal/summary"
)

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)

	dbPath, err := resolveDBPath(c.globals, cfg)
	if err != nil {
		return err
	}

	var sinceMicros int64
	if c.Since != "" {
		d, err := parseDuration(c.Since)
		if err != nil {
			return err
		}
		sinceMicros = extract.ChromeMicros(time.Now().Add(-d))
	}

	exclude := cfg.Filter.ExcludeDomains
	if c.ExcludeSensitive {
		exclude = append(append([]string{}, exclude...), config.SensitiveDomains()...)
	}

	reader, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	return c.executeWithReader(reader, dbPath, sinceMicros, exclude)
}

// executeWithReader runs stats against a provided reader (for testing).
func (c *StatsCommand) executeWithReader(reader *history.Reader, dbPath string, sinceMicros int64, excludeDomains []string) error {
	ctx := context.Background()

	snap, err := reader.ReadAll(ctx, history.Options{SinceMicros: sinceMicros})
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	entries, err := extract.Assemble(snap.URLs, snap.Visits, snap.SearchTerms)
	if err != nil {
		return fmt.Errorf("assemble entries: %w", err)
	}
	entries = extract.ExcludeDomains(entries, excludeDomains)

	sum := summary.Aggregate(entries)

	if c.globals != nil && c.globals.JSON {
		// Same shape as the statistics artifact.
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	return c.printStatsHuman(dbPath, sum)
}

func (c *StatsCommand) printStatsHuman(dbPath string, sum summary.Summary) error {
	fmt.Println("History Statistics")
	fmt.Println("==================")
	if info, err := os.Stat(dbPath); err == nil {
		fmt.Printf("Source:        %s (%s)\n", dbPath, formatBytes(info.Size()))
	} else {
		fmt.Printf("Source:        %s\n", dbPath)
	}
	fmt.Printf("URLs:          %s\n", formatNumber(int64(sum.TotalURLs)))
	fmt.Printf("Visits:        %s\n", formatNumber(int64(sum.TotalVisits)))
	fmt.Printf("Search terms:  %s\n", formatNumber(int64(sum.TotalSearchTerms)))

	if sum.DateRange.Oldest != "" {
		fmt.Printf("Oldest:        %s\n", sum.DateRange.Oldest[:10])
		fmt.Printf("Newest:        %s\n", sum.DateRange.Newest[:10])
	}

	if len(sum.Categories) > 0 {
		fmt.Println()
		fmt.Println("Categories:")
		for _, name := range sortedCategoryNames(sum.Categories) {
			fmt.Printf("  %-22s %s\n", name, formatNumber(int64(sum.Categories[name])))
		}
	}

	if len(sum.TopDomains) > 0 {
		fmt.Println()
		fmt.Println("Top Domains:")
		// The statistics artifact keeps twenty; the console shows ten.
		domains := sum.TopDomains
		if len(domains) > 10 {
			domains = domains[:10]
		}
		for _, d := range domains {
			fmt.Printf("  %-30s %s\n", d.Domain, formatNumber(int64(d.Count)))
		}
	}

	return nil
}
