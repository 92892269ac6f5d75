package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Export *ExportCommand
	Stats  *StatsCommand
	Peek   *PeekCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "recollect"
	parser.LongDescription = "Export browser history from a Chromium History database into chunked, model-ready JSON plus CSV and statistics artifacts."

	cmds := &commands{
		Export: &ExportCommand{globals: &globals, version: version},
		Stats:  &StatsCommand{globals: &globals, version: version},
		Peek:   &PeekCommand{globals: &globals, version: version},
	}

	parser.AddCommand("export", "Extract history into output artifacts", "Read the history database, classify and assemble entries, and write chunked JSON, CSV, and statistics files.", cmds.Export)
	parser.AddCommand("stats", "Print summary statistics", "Aggregate the history database and print summary statistics without writing files.", cmds.Stats)
	parser.AddCommand("peek", "Print one assembled entry", "Print the fully assembled entry for a single urls-table id.", cmds.Peek)

	return parser, &globals, cmds
}

// Run is the main entry point for the recollect CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("recollect %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
