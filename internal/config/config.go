// Package config provides configuration management for the seanstash CLI.
// Configuration is loaded once at startup from ~/.seanstash/config.yaml into
// an immutable snapshot that is passed explicitly into every component; the
// file is only ever written back by the interactive wizard or on first run.
package config

import "time"

// Config holds the full configuration snapshot consumed by the sync pipeline.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Filters  FilterConfig   `yaml:"filters"`
	Behavior BehaviorConfig `yaml:"behavior"`
}

// APIConfig describes the remote SeanStash endpoint.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Endpoint is the snippet creation path, appended to BaseURL.
	Endpoint string `yaml:"endpoint"`
	// TimeoutSeconds applies per outbound call.
	TimeoutSeconds int `yaml:"timeout"`
	// APIKey, when set, is sent as an x-api-key header.
	APIKey string `yaml:"api_key"`
}

// Timeout returns the per-call timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FilterConfig controls which history entries survive filtering.
type FilterConfig struct {
	// MinLength is the minimum trimmed command length; shorter commands are dropped.
	MinLength int `yaml:"min_length"`
	// ExcludePatterns are case-insensitive regular expressions matched as a
	// substring search against the trimmed command, in order. First match wins.
	ExcludePatterns   []string `yaml:"exclude_patterns"`
	IncludeWorkingDir bool     `yaml:"include_working_dir"`
	IncludeTimestamp  bool     `yaml:"include_timestamp"`
}

// BehaviorConfig controls sync behavior.
type BehaviorConfig struct {
	AutoSend  bool `yaml:"auto_send"`
	BatchSize int  `yaml:"batch_size"`
	DryRun    bool `yaml:"dry_run"`
	// Force bypasses the sent-hash ledger when partitioning records. It is
	// never persisted; only the --force flag sets it.
	Force bool `yaml:"-"`
}

// Default returns a Config with default values, matching a fresh install.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000",
			Endpoint:       "/api/v2/snippets",
			TimeoutSeconds: 10,
		},
		Filters: FilterConfig{
			MinLength: 3,
			ExcludePatterns: []string{
				"cd",
				"ls",
				"pwd",
				"exit",
				"clear",
				"history",
				"echo.*password",
				".*secret.*",
				".*token.*",
			},
			IncludeWorkingDir: true,
			IncludeTimestamp:  true,
		},
		Behavior: BehaviorConfig{
			BatchSize: 10,
		},
	}
}
