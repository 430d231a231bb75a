// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for recall.
package config

import "time"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Server configures the HTTP gateway.
	Server ServerConfig `yaml:"server"`

	// Engine configures the context assembly engine.
	Engine EngineConfig `yaml:"engine"`

	// History configures the conversation store and its retention.
	History HistoryConfig `yaml:"history"`
}

// ServerConfig holds HTTP gateway settings.
type ServerConfig struct {
	Bind            string        `yaml:"bind"`
	Auth            AuthConfig    `yaml:"auth"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig configures authentication for the context endpoints.
type AuthConfig struct {
	BearerToken string `yaml:"bearer_token"`
}

// IsConfigured returns true if an auth method is configured.
func (a AuthConfig) IsConfigured() bool {
	return a.BearerToken != ""
}

// EngineConfig holds the context engine tuning knobs. Zero values fall back
// to engine defaults (20000-char budget, 30 m liveness window, 200-char
// truncation floor, 70/20 head-tail split).
type EngineConfig struct {
	MaxContextChars int           `yaml:"max_context_chars"`
	LivenessWindow  time.Duration `yaml:"liveness_window"`
	TruncationFloor int           `yaml:"truncation_floor"`
	HeadFraction    float64       `yaml:"head_fraction"`
	TailFraction    float64       `yaml:"tail_fraction"`

	// Timezone is an IANA zone name for calendar-date comparisons
	// ("today" vs "yesterday"). Empty or "Local" uses the host zone.
	Timezone string `yaml:"timezone"`
}

// HistoryConfig holds conversation store settings.
type HistoryConfig struct {
	// Path is the SQLite database path. Empty means in-memory only
	// (no persistence across restarts).
	Path string `yaml:"path"`

	// Retention bounds how far back the store looks when serving records.
	// Zero disables the filter.
	Retention time.Duration `yaml:"retention"`

	// PruneSchedule is a cron expression for the retention prune job.
	// Empty disables pruning.
	PruneSchedule string `yaml:"prune_schedule"`
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Server.Bind == "" {
		c.Server.Bind = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.History.Retention <= 0 {
		c.History.Retention = 7 * 24 * time.Hour
	}
}
