package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/recollect/internal/extract"
	"github.com/runnerr0/recollect/internal/history"
)

// Execute implements the go-flags Commander interface for PeekCommand.
func (c *PeekCommand) Execute(args []string) error {
	if c.ID == 0 {
		return fmt.Errorf("--id is required for peek command")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging.Level, c.globals != nil && c.globals.Verbose)

	dbPath, err := resolveDBPath(c.globals, cfg)
	if err != nil {
		return err
	}

	reader, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	return c.executeWithReader(reader)
}

// executeWithReader runs peek against a provided reader (for testing).
func (c *PeekCommand) executeWithReader(reader *history.Reader) error {
	ctx := context.Background()

	snap, err := reader.ReadURL(ctx, c.ID)
	if err != nil {
		return err
	}

	entries, err := extract.Assemble(snap.URLs, snap.Visits, snap.SearchTerms)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		// The row exists but assembly skipped it (blank url).
		return fmt.Errorf("url %d not found", c.ID)
	}
	entry := entries[0]

	if (c.globals != nil && c.globals.JSON) || c.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	}

	c.printFull(&entry)
	return nil
}

func (c *PeekCommand) printFull(e *extract.Entry) {
	fmt.Printf("Entry %d\n", e.ID)
	fmt.Printf("URL:         %s\n", e.URL)
	fmt.Printf("Title:       %s\n", e.Title)
	fmt.Printf("Domain:      %s\n", e.Domain)
	fmt.Printf("Category:    %s\n", e.Category)
	fmt.Printf("Visit count: %d (typed %d)\n", e.VisitCount, e.TypedCount)
	if e.LastVisitTime != "" {
		fmt.Printf("Last visit:  %s\n", e.LastVisitTime)
	} else {
		fmt.Println("Last visit:  never")
	}
	if len(e.SearchTerms) > 0 {
		fmt.Printf("Search terms: %s\n", strings.Join(e.SearchTerms, "; "))
	}

	if len(e.Visits) > 0 {
		fmt.Println()
		fmt.Println("Visits:")
		for _, v := range e.Visits {
			line := "  " + v.VisitTime
			if v.Duration > 0 {
				line += "  " + formatVisitDuration(v.Duration)
			}
			if v.Referrer != "" {
				line += "  from " + v.Referrer
			}
			fmt.Println(line)
		}
	}
}
