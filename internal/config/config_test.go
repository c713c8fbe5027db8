package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, DefaultSQLitePath, cfg.SQLitePath)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultOpenAIURL, cfg.OpenAIURL)
	assert.Equal(t, DefaultBackupDir, cfg.BackupDir)
	assert.Equal(t, DefaultBackupIntervalHours, cfg.BackupIntervalHours)
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BACKUP_INTERVAL_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 6, cfg.BackupIntervalHours)
}
