package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DB      string `long:"db" description:"Path to the History database copy (overrides config)"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ExportCommand — extract the full history into JSON, CSV, and statistics
// artifacts. Flags override the config file, which overrides defaults.
type ExportCommand struct {
	Out              string `long:"out" description:"Directory for output artifacts"`
	Prefix           string `long:"prefix" description:"Base name for output artifacts"`
	ChunkSize        string `long:"chunk-size" description:"Token budget per chunk: <number>[K|M], e.g. 200K or 1M"`
	NoChunks         bool   `long:"no-chunks" description:"Write one JSON document instead of chunked files"`
	Estimator        string `long:"estimator" description:"Token estimator: heuristic | cl100k"`
	Since            string `long:"since" description:"Only URLs last visited within duration (e.g., 7d, 24h, 2w)"`
	SkipCSV          bool   `long:"skip-csv" description:"Skip the CSV artifact"`
	SkipStats        bool   `long:"skip-stats" description:"Skip the statistics artifact"`
	ExcludeSensitive bool   `long:"exclude-sensitive" description:"Also exclude the built-in sensitive-domain list (banking, health, auth)"`

	globals *GlobalFlags
	version string
}

// StatsCommand — aggregate and print summary statistics without writing
// any artifact.
type StatsCommand struct {
	Since            string `long:"since" description:"Only URLs last visited within duration (e.g., 7d, 24h, 2w)"`
	ExcludeSensitive bool   `long:"exclude-sensitive" description:"Also exclude the built-in sensitive-domain list"`

	globals *GlobalFlags
	version string
}

// PeekCommand — print one fully assembled entry by its urls-table id.
type PeekCommand struct {
	ID     int64  `long:"id" description:"URL id (required)"`
	Format string `long:"format" description:"Output format: full | json" default:"full"`

	globals *GlobalFlags
	version string
}
