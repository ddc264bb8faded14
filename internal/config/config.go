// Package config loads application configuration from environment variables
// with sensible defaults.
package config

import (
	"os"
	"strconv"
)

// Config holds the complete notewell configuration.
type Config struct {
	// DataDir is where the snapshot, backups and logs live.
	DataDir string
	// Port is the HTTP listen port.
	Port int
	// BackupSchedule is a cron expression for automatic snapshot backups;
	// empty disables them.
	BackupSchedule string
	// BackupKeep is how many snapshot backups to retain.
	BackupKeep int
	// Debug enables debug-level logging.
	Debug bool
}

// Load reads configuration from the environment.
//
// Environment variables:
//   - NOTEWELL_DATA_DIR: data directory (default: data)
//   - PORT: HTTP listen port (default: 8080)
//   - BACKUP_SCHEDULE: cron expression for automatic backups (default: @daily, empty disables)
//   - BACKUP_KEEP: number of backups to retain (default: 7)
//   - DEBUG: any non-empty value enables debug logging
func Load() *Config {
	// BACKUP_SCHEDULE set to the empty string is a deliberate opt-out,
	// so it is looked up rather than defaulted on empty.
	schedule := "@daily"
	if v, ok := os.LookupEnv("BACKUP_SCHEDULE"); ok {
		schedule = v
	}

	return &Config{
		DataDir:        getEnvString("NOTEWELL_DATA_DIR", "data"),
		Port:           getEnvInt("PORT", 8080),
		BackupSchedule: schedule,
		BackupKeep:     getEnvInt("BACKUP_KEEP", 7),
		Debug:          os.Getenv("DEBUG") != "",
	}
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
