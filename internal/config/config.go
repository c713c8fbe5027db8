package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is not set
const (
	DefaultHTTPAddr            = ":8080"
	DefaultSQLitePath          = "data/hanzitutor.db"
	DefaultBackupDir           = "data/backups"
	DefaultBackupIntervalHours = 24
	DefaultOpenAIURL           = "https://api.openai.com/v1/chat/completions"
)

// Config holds all runtime settings, read once at startup and passed into
// constructors explicitly.
type Config struct {
	// DBType selects the database driver: "sqlite" (default) or "postgres"
	DBType      string
	DatabaseURL string
	SQLitePath  string

	HTTPAddr string

	// AdminPassword protects mutating and admin endpoints
	AdminPassword string

	OpenAIKey string
	OpenAIURL string

	BackupDir           string
	BackupIntervalHours int
}

// Load reads .env (if present) and the environment into a Config
func Load() (*Config, error) {
	// A missing .env is fine: plain environment variables still apply
	_ = godotenv.Load()

	cfg := &Config{
		DBType:              getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SQLitePath:          getEnv("SQLITE_PATH", DefaultSQLitePath),
		HTTPAddr:            getEnv("HTTP_ADDR", DefaultHTTPAddr),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIURL:           getEnv("OPENAI_API_URL", DefaultOpenAIURL),
		BackupDir:           getEnv("BACKUP_DIR", DefaultBackupDir),
		BackupIntervalHours: getEnvInt("BACKUP_INTERVAL_HOURS", DefaultBackupIntervalHours),
	}

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD environment variable is not set")
	}
	if cfg.DBType == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set when DB_TYPE is postgres")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
