package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runnerr0/recollect/internal/cli"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintln(os.Stderr, "recollect:", err)
		if errors.Is(err, cli.ErrInvalidChunkSize) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
