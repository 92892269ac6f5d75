package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "comet_history_temp.db", cfg.Source.Path)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "history_export", cfg.Output.Prefix)
	assert.True(t, cfg.Output.CSV)
	assert.True(t, cfg.Output.Statistics)
	assert.True(t, cfg.Chunking.Enabled)
	assert.Equal(t, 200000, cfg.Chunking.MaxTokens)
	assert.Equal(t, "heuristic", cfg.Chunking.Estimator)
	assert.Empty(t, cfg.Filter.ExcludeDomains)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSensitiveDomainsIsPopulated(t *testing.T) {
	domains := SensitiveDomains()
	assert.NotEmpty(t, domains)
	assert.Greater(t, len(domains), 10)

	// Spot-check some categories
	assert.Contains(t, domains, "chase.com")
	assert.Contains(t, domains, "1password.com")
	assert.Contains(t, domains, "mychart.com")
	assert.Contains(t, domains, "irs.gov")
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
source:
  path: "/tmp/History-copy"
output:
  prefix: "browsing"
chunking:
  max_tokens: 50000
logging:
  level: "debug"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "/tmp/History-copy", cfg.Source.Path)
	assert.Equal(t, "browsing", cfg.Output.Prefix)
	assert.Equal(t, 50000, cfg.Chunking.MaxTokens)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.True(t, cfg.Chunking.Enabled)
	assert.Equal(t, "heuristic", cfg.Chunking.Estimator)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644)
	require.NoError(t, err)

	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load("/tmp/nonexistent_path_12345/config.yaml")
	assert.Error(t, err)
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)

	// Should return defaults
	assert.Equal(t, "comet_history_temp.db", cfg.Source.Path)
	assert.Equal(t, 200000, cfg.Chunking.MaxTokens)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Chunking.MaxTokens, cfg2.Chunking.MaxTokens)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
chunking:
  max_tokens: 75000
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 75000, cfg.Chunking.MaxTokens)
	// Other fields remain defaults
	assert.Equal(t, "history_export", cfg.Output.Prefix)
}

func TestLoadPartialYAMLMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	// Only override one nested field
	yamlContent := `
chunking:
  estimator: "cl100k"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "cl100k", cfg.Chunking.Estimator)
	// Other chunking fields remain default
	assert.True(t, cfg.Chunking.Enabled)
	assert.Equal(t, 200000, cfg.Chunking.MaxTokens)
}

func TestLoadWithExcludeDomains(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
filter:
  exclude_domains:
    - "example.com"
    - "secret.org"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "secret.org"}, cfg.Filter.ExcludeDomains)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/data/History")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data/History"), expanded)

	// Paths without a leading ~ pass through untouched.
	plain, err := ExpandPath("/var/tmp/History")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/History", plain)
}
