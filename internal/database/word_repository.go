package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/hanzitutor/pkg/models"
)

// WordRepository handles database operations for vocabulary words
type WordRepository struct {
	db *DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetAll returns all words
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := r.db.Select(&words, "SELECT * FROM words ORDER BY chinese")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// GetByID returns a word by ID, or nil if no such word exists
func (r *WordRepository) GetByID(id int) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT * FROM words WHERE id = ?")
	err := r.db.Get(&word, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// GetByChinese returns a word by its Chinese headword, or nil if no such
// word exists
func (r *WordRepository) GetByChinese(chinese string) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT * FROM words WHERE chinese = ?")
	err := r.db.Get(&word, query, chinese)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by headword: %v", err)
	}
	return &word, nil
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	if r.db.DriverName() == "postgres" {
		query := `
			INSERT INTO words (chinese, pinyin, english, notes)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		return r.db.QueryRow(
			query,
			word.Chinese,
			word.Pinyin,
			word.English,
			word.Notes,
		).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	}

	// SQLite (no RETURNING)
	query := `
		INSERT INTO words (chinese, pinyin, english, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	result, err := r.db.Exec(query, word.Chinese, word.Pinyin, word.English, word.Notes)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = int(id)

	err = r.db.QueryRow("SELECT created_at, updated_at FROM words WHERE id = ?", word.ID).
		Scan(&word.CreatedAt, &word.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to get timestamps: %v", err)
	}
	return nil
}

// Update modifies an existing word
func (r *WordRepository) Update(word *models.Word) error {
	if r.db.DriverName() == "postgres" {
		query := `
			UPDATE words SET
				chinese = $1,
				pinyin = $2,
				english = $3,
				notes = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at
		`
		return r.db.QueryRow(
			query,
			word.Chinese,
			word.Pinyin,
			word.English,
			word.Notes,
			word.ID,
		).Scan(&word.UpdatedAt)
	}

	query := `
		UPDATE words SET
			chinese = ?,
			pinyin = ?,
			english = ?,
			notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, word.Chinese, word.Pinyin, word.English, word.Notes, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}

	err = r.db.QueryRow("SELECT updated_at FROM words WHERE id = ?", word.ID).
		Scan(&word.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to get updated_at: %v", err)
	}
	return nil
}

// Delete removes a word
func (r *WordRepository) Delete(id int) error {
	query := r.db.Rebind("DELETE FROM words WHERE id = ?")
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}

// Search searches for words by pattern matching on headword, pinyin or gloss
func (r *WordRepository) Search(pattern string) ([]models.Word, error) {
	var words []models.Word
	like := "%" + pattern + "%"

	if r.db.DriverName() == "postgres" {
		query := `
			SELECT * FROM words
			WHERE chinese LIKE $1 OR pinyin ILIKE $1 OR english ILIKE $1
			ORDER BY chinese
		`
		if err := r.db.Select(&words, query, like); err != nil {
			return nil, fmt.Errorf("failed to search words: %v", err)
		}
		return words, nil
	}

	query := `
		SELECT * FROM words
		WHERE chinese LIKE ? OR LOWER(pinyin) LIKE LOWER(?) OR LOWER(english) LIKE LOWER(?)
		ORDER BY chinese
	`
	if err := r.db.Select(&words, query, like, like, like); err != nil {
		return nil, fmt.Errorf("failed to search words: %v", err)
	}
	return words, nil
}

// GetRandom returns up to count random words
func (r *WordRepository) GetRandom(count int) ([]models.Word, error) {
	var words []models.Word

	// RANDOM() works on both sqlite and postgres
	query := r.db.Rebind("SELECT * FROM words ORDER BY RANDOM() LIMIT ?")
	if err := r.db.Select(&words, query, count); err != nil {
		return nil, fmt.Errorf("failed to get random words: %v", err)
	}
	return words, nil
}

// GetByIDs returns the words with the given IDs
func (r *WordRepository) GetByIDs(ids []int) ([]models.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM words WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %v", err)
	}

	var words []models.Word
	if err := r.db.Select(&words, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get words by IDs: %v", err)
	}
	return words, nil
}

// DistinctHeadwords returns the deduplicated list of Chinese headwords, the
// vocabulary list fed to the matcher
func (r *WordRepository) DistinctHeadwords() ([]string, error) {
	var headwords []string
	err := r.db.Select(&headwords, "SELECT DISTINCT chinese FROM words ORDER BY chinese")
	if err != nil {
		return nil, fmt.Errorf("failed to get headwords: %v", err)
	}
	return headwords, nil
}
