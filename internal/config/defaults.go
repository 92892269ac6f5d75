package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Path: "comet_history_temp.db",
		},
		Output: OutputConfig{
			Dir:        ".",
			Prefix:     "history_export",
			CSV:        true,
			Statistics: true,
		},
		Chunking: ChunkingConfig{
			Enabled:   true,
			MaxTokens: 200000,
			Estimator: "heuristic",
		},
		Filter: FilterConfig{
			ExcludeDomains: []string{},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
