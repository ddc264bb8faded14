package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "@daily", cfg.BackupSchedule)
	assert.Equal(t, 7, cfg.BackupKeep)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NOTEWELL_DATA_DIR", "/var/lib/notewell")
	t.Setenv("PORT", "9000")
	t.Setenv("BACKUP_SCHEDULE", "@hourly")
	t.Setenv("BACKUP_KEEP", "3")
	t.Setenv("DEBUG", "1")

	cfg := Load()

	assert.Equal(t, "/var/lib/notewell", cfg.DataDir)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "@hourly", cfg.BackupSchedule)
	assert.Equal(t, 3, cfg.BackupKeep)
	assert.True(t, cfg.Debug)
}

func TestLoadEmptyScheduleDisablesBackups(t *testing.T) {
	t.Setenv("BACKUP_SCHEDULE", "")
	cfg := Load()
	assert.Empty(t, cfg.BackupSchedule)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
}
