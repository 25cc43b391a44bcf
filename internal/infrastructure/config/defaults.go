package config

import (
	"os"
	"path/filepath"
	"time"
)

// UserDirName is the per-user directory under $HOME for preferences and local state
const UserDirName = ".redcycle"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" && cfg.Database.Type == "sqlite" {
		cfg.Database.Path = userStatePath("redcycle.db")
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "redcycle"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "redcycle"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Session defaults
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = cfg.Database.Type
	}
	if cfg.Session.FilePath == "" {
		cfg.Session.FilePath = userStatePath("session.json")
	}
	if cfg.Session.LockFile == "" {
		cfg.Session.LockFile = userStatePath("redcycle.pid")
	}
	if cfg.Session.Profile == "" {
		cfg.Session.Profile = "default"
	}
	if cfg.Session.EcoTier == "" {
		cfg.Session.EcoTier = "off"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "redcycle"
	}
}

// userStatePath places a file under ~/.redcycle, or the working directory
// when no home directory is available
func userStatePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, UserDirName, name)
}
