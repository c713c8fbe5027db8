package database

import (
	"database/sql"
	"fmt"

	"github.com/example/hanzitutor/pkg/models"
)

// SentenceRepository handles database operations for generated sentences
type SentenceRepository struct {
	db *DB
}

// NewSentenceRepository creates a new repository instance
func NewSentenceRepository(db *DB) *SentenceRepository {
	return &SentenceRepository{db: db}
}

// Create inserts a new sentence together with its matcher analysis
func (r *SentenceRepository) Create(sentence *models.Sentence) error {
	if r.db.DriverName() == "postgres" {
		query := `
			INSERT INTO sentences (text, translation, used_words, unknown_chars, uncovered_chars, model)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		return r.db.QueryRow(
			query,
			sentence.Text,
			sentence.Translation,
			sentence.UsedWords,
			sentence.UnknownChars,
			sentence.UncoveredChars,
			sentence.Model,
		).Scan(&sentence.ID, &sentence.CreatedAt)
	}

	// SQLite (no RETURNING)
	query := `
		INSERT INTO sentences (text, translation, used_words, unknown_chars, uncovered_chars, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	result, err := r.db.Exec(
		query,
		sentence.Text,
		sentence.Translation,
		sentence.UsedWords,
		sentence.UnknownChars,
		sentence.UncoveredChars,
		sentence.Model,
	)
	if err != nil {
		return fmt.Errorf("failed to create sentence: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	sentence.ID = int(id)

	err = r.db.QueryRow("SELECT created_at FROM sentences WHERE id = ?", sentence.ID).
		Scan(&sentence.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to get created_at: %v", err)
	}
	return nil
}

// GetByID returns a sentence by ID, or nil if no such sentence exists
func (r *SentenceRepository) GetByID(id int) (*models.Sentence, error) {
	var sentence models.Sentence
	query := r.db.Rebind("SELECT * FROM sentences WHERE id = ?")
	err := r.db.Get(&sentence, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence by ID: %v", err)
	}
	return &sentence, nil
}

// GetRecent returns the most recently generated sentences, newest first
func (r *SentenceRepository) GetRecent(limit int) ([]models.Sentence, error) {
	var sentences []models.Sentence
	query := r.db.Rebind("SELECT * FROM sentences ORDER BY created_at DESC, id DESC LIMIT ?")
	if err := r.db.Select(&sentences, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent sentences: %v", err)
	}
	return sentences, nil
}

// GetAll returns all generated sentences, newest first
func (r *SentenceRepository) GetAll() ([]models.Sentence, error) {
	var sentences []models.Sentence
	err := r.db.Select(&sentences, "SELECT * FROM sentences ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get sentences: %v", err)
	}
	return sentences, nil
}

// Delete removes a sentence
func (r *SentenceRepository) Delete(id int) error {
	query := r.db.Rebind("DELETE FROM sentences WHERE id = ?")
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete sentence: %v", err)
	}
	return nil
}
