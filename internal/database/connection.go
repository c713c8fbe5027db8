package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hanzitutor/internal/config"
)

// DB wraps the sqlx connection handle. It is constructed once at startup
// and passed into the repositories explicitly.
type DB struct {
	*sqlx.DB
}

// Connect opens the database selected by cfg.DBType and initializes the
// schema. SQLite is the default; postgres is selected with DB_TYPE=postgres
// and DATABASE_URL.
func Connect(cfg *config.Config) (*DB, error) {
	var conn *sqlx.DB
	var err error

	switch cfg.DBType {
	case "postgres":
		conn, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
	default:
		// Create the data directory if it doesn't exist
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
		}

		conn, err = sqlx.Connect("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	}

	db := &DB{DB: conn}
	if err := db.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func (db *DB) initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		idColumn = "SERIAL PRIMARY KEY"
	}

	// Create words table
	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			chinese TEXT NOT NULL UNIQUE,
			pinyin TEXT DEFAULT '',
			english TEXT NOT NULL,
			notes TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	// Create sentences table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sentences (
			id %s,
			text TEXT NOT NULL,
			translation TEXT DEFAULT '',
			used_words TEXT DEFAULT '[]',
			unknown_chars TEXT DEFAULT '[]',
			uncovered_chars TEXT DEFAULT '[]',
			model TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create sentences table: %v", err)
	}

	// Create reviews table
	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS reviews (
			id %s,
			word_id INTEGER NOT NULL,
			easiness_factor REAL DEFAULT 2.5,
			interval_days INTEGER DEFAULT 1,
			repetitions INTEGER DEFAULT 0,
			last_quality INTEGER DEFAULT 3,
			last_review_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			next_review_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE,
			UNIQUE(word_id)
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create reviews table: %v", err)
	}

	return nil
}
