// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer optional file and env on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend names accepted by the store config key.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the backing store: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath locates the database file when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// AwardMin and AwardMax bound the inclusive random award range.
	AwardMin int `koanf:"award_min"`
	AwardMax int `koanf:"award_max"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		Store:               StoreMemory,
		SQLitePath:          "ranking.db",
		AwardMin:            1,
		AwardMax:            10,
		MaxLeaderboardLimit: 100,
	}
}
