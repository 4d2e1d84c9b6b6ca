package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Org is the GitHub organization whose repositories are collected.
	Org string `yaml:"org,omitempty"`

	// DefaultFormat is the output format used when --output is not given.
	DefaultFormat string `yaml:"default_format,omitempty"`

	// DefaultSort is the sort spec applied when --sort is not given,
	// e.g. "-collaborators,name".
	DefaultSort string `yaml:"default_sort,omitempty"`

	// ExcludeRepos lists repository names skipped during collection.
	ExcludeRepos []string `yaml:"exclude_repos,omitempty"`

	// IncludeArchived keeps archived repositories in the snapshot.
	IncludeArchived bool `yaml:"include_archived,omitempty"`

	// Fetch tunes the collection step.
	Fetch *FetchOverrides `yaml:"fetch,omitempty"`
}

// FetchOverrides allows customizing the collection step
type FetchOverrides struct {
	// Workers bounds the concurrent per-repo detail fetches.
	Workers *int `yaml:"workers,omitempty"`
	// IncludeForks keeps forked repositories in the snapshot.
	IncludeForks *bool `yaml:"include_forks,omitempty"`
}

// DefaultFetchWorkers is the default bound on concurrent per-repo fetches.
const DefaultFetchWorkers = 10

// GetFetchWorkers returns the worker bound with user overrides applied
func (c *Config) GetFetchWorkers() int {
	if c.Fetch != nil && c.Fetch.Workers != nil && *c.Fetch.Workers > 0 {
		return *c.Fetch.Workers
	}
	return DefaultFetchWorkers
}

// IncludeForks reports whether forked repositories should be collected
func (c *Config) IncludeForks() bool {
	return c.Fetch != nil && c.Fetch.IncludeForks != nil && *c.Fetch.IncludeForks
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".repodash"
	}
	return filepath.Join(configDir, "repodash")
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".repodash.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then
// merges any local .repodash.yaml on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.Org != "" {
		result.Org = local.Org
	} else {
		result.Org = global.Org
	}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	if local.DefaultSort != "" {
		result.DefaultSort = local.DefaultSort
	} else {
		result.DefaultSort = global.DefaultSort
	}

	if len(local.ExcludeRepos) > 0 {
		result.ExcludeRepos = local.ExcludeRepos
	} else {
		result.ExcludeRepos = global.ExcludeRepos
	}

	result.IncludeArchived = global.IncludeArchived || local.IncludeArchived

	result.Fetch = mergeFetchOverrides(global.Fetch, local.Fetch)

	return result
}

func mergeFetchOverrides(global, local *FetchOverrides) *FetchOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &FetchOverrides{}

	if global != nil {
		result.Workers = global.Workers
		result.IncludeForks = global.IncludeForks
	}
	if local != nil {
		if local.Workers != nil {
			result.Workers = local.Workers
		}
		if local.IncludeForks != nil {
			result.IncludeForks = local.IncludeForks
		}
	}

	if result.Workers == nil && result.IncludeForks == nil {
		return nil
	}
	return result
}

// DefaultConfig returns a config populated with all default values.
func DefaultConfig() *Config {
	workers := DefaultFetchWorkers
	includeForks := false
	return &Config{
		DefaultFormat: "table",
		Fetch: &FetchOverrides{
			Workers:      &workers,
			IncludeForks: &includeForks,
		},
	}
}

// SetOrg updates the organization and persists the config.
func (c *Config) SetOrg(org string) error {
	c.Org = org
	return c.Save()
}

// SetDefaultFormat updates the default output format and persists the config.
func (c *Config) SetDefaultFormat(format string) error {
	c.DefaultFormat = format
	return c.Save()
}

// SetDefaultSort updates the default sort spec and persists the config.
func (c *Config) SetDefaultSort(spec string) error {
	c.DefaultSort = spec
	return c.Save()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Following 12-factor app practice, tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// IsRepoExcluded checks if a repo is in the exclude list
func (c *Config) IsRepoExcluded(name string) bool {
	for _, excluded := range c.ExcludeRepos {
		if excluded == name {
			return true
		}
	}
	return false
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# repodash configuration file

# GitHub organization to collect metrics for
# org: my-org

# Output format: table, json, markdown, html
default_format: table

# Default sort spec: comma-separated column keys, "-" prefix for descending
# default_sort: "-collaborators,name"

# Skip noisy repositories during collection (optional)
# exclude_repos:
#   - sandbox
#   - archive-mirror

# Collection tuning (optional)
# fetch:
#   workers: 10
#   include_forks: false
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
