// Package config provides centralized configuration for workreport runtime values.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/manav03panchal/workreport/internal/worktime"
)

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Report defaults used when flags are omitted
	Reports ReportConfig

	// Registry defaults
	Registry RegistryConfig

	// Dashboard configuration
	Dashboard DashboardConfig

	// Debug enables JSON debug logging without the --debug flag.
	Debug bool
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory. Empty means the XDG data dir;
	// ":memory:" opens an in-memory database.
	Path string

	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 10MB (10 * 1024 * 1024 bytes)
	MinFreeSpace uint64

	// MinFreeSpaceWarning is the threshold for warning about low disk space.
	// Default: 50MB (50 * 1024 * 1024 bytes)
	MinFreeSpaceWarning uint64
}

// ReportConfig holds defaults for new work reports.
type ReportConfig struct {
	// DefaultStart is the start time of a new report.
	// Default: 09:00
	DefaultStart worktime.Clock

	// DefaultEnd is the end time of a new report.
	// Default: 17:00
	DefaultEnd worktime.Clock

	// DefaultBreakMinutes is the break of a new report.
	// Default: 0
	DefaultBreakMinutes float64
}

// RegistryConfig holds defaults for registry records.
type RegistryConfig struct {
	// DefaultProjectHours is the planned day length of a new project.
	// Default: 8
	DefaultProjectHours float64
}

// DashboardConfig holds dashboard configuration.
type DashboardConfig struct {
	// RecentCount is how many reports the recent-reports card shows.
	// Default: 3
	RecentCount int

	// WeeklyTargetHours scales the week progress bar. Zero hides the bar.
	// Default: 40
	WeeklyTargetHours float64
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			MinFreeSpace:        10 * 1024 * 1024, // 10MB
			MinFreeSpaceWarning: 50 * 1024 * 1024, // 50MB
		},
		Reports: ReportConfig{
			DefaultStart: worktime.NewClock(9, 0),
			DefaultEnd:   worktime.NewClock(17, 0),
		},
		Registry: RegistryConfig{
			DefaultProjectHours: 8,
		},
		Dashboard: DashboardConfig{
			RecentCount:       3,
			WeeklyTargetHours: 40,
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
// Malformed values are ignored and the current value is kept.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	if v := os.Getenv("WORKREPORT_DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("WORKREPORT_MIN_FREE_SPACE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpace = n
		}
	}
	if v := os.Getenv("WORKREPORT_MIN_FREE_SPACE_WARNING"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpaceWarning = n
		}
	}

	// Report defaults
	if v := os.Getenv("WORKREPORT_DEFAULT_START"); v != "" {
		if clock, err := worktime.ParseClock(v); err == nil {
			c.Reports.DefaultStart = clock
		}
	}
	if v := os.Getenv("WORKREPORT_DEFAULT_END"); v != "" {
		if clock, err := worktime.ParseClock(v); err == nil {
			c.Reports.DefaultEnd = clock
		}
	}
	if v := os.Getenv("WORKREPORT_DEFAULT_BREAK"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			c.Reports.DefaultBreakMinutes = n
		}
	}

	// Registry defaults
	if v := os.Getenv("WORKREPORT_DEFAULT_PROJECT_HOURS"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 && n <= 24 {
			c.Registry.DefaultProjectHours = n
		}
	}

	// Dashboard configuration
	if v := os.Getenv("WORKREPORT_RECENT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Dashboard.RecentCount = n
		}
	}

	if v := os.Getenv("WORKREPORT_WEEKLY_TARGET"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			c.Dashboard.WeeklyTargetHours = n
		}
	}

	if v := os.Getenv("WORKREPORT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Debug = b
		}
	}
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}

// InMemory reports whether the configured database is in-memory.
func (c *RuntimeConfig) InMemory() bool {
	return c.Storage.Path == ":memory:"
}
