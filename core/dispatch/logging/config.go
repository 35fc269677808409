package logging

import (
	"fmt"
	"strings"
)

// Backends accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Config selects and tunes the trip log backend.
type Config struct {
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.Path == "" {
		switch c.Backend {
		case BackendJSONL:
			c.Path = "trips.jsonl"
		case BackendSQLite:
			c.Path = "trips.db"
		}
	}
}

// Validate checks the backend name and rotation settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendMemory, BackendJSONL, BackendSQLite:
	default:
		return fmt.Errorf("unknown trip log backend %q", c.Backend)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("trip log rotation settings must not be negative")
	}
	return nil
}

// NewStore opens the configured backend. A JSONL backend without a size
// limit writes a single file; otherwise lumberjack rotates it.
func NewStore(c Config) (LogStore, error) {
	c.SetDefaults()
	switch strings.ToLower(c.Backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendJSONL:
		if c.MaxSizeMB == 0 {
			return NewJSONLStore(c.Path)
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	case BackendSQLite:
		return NewSQLiteStore(c.Path)
	}
	return nil, fmt.Errorf("unknown trip log backend %q", c.Backend)
}
