package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hanzitutor/pkg/models"
)

// ReviewRepository handles database operations for flashcard reviews
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new repository instance
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetByWord returns the review state for a word, or nil if the word has
// never been reviewed
func (r *ReviewRepository) GetByWord(wordID int) (*models.Review, error) {
	var review models.Review
	query := r.db.Rebind("SELECT * FROM reviews WHERE word_id = ?")
	err := r.db.Get(&review, query, wordID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %v", err)
	}
	return &review, nil
}

// Upsert inserts or updates the review state for a word
func (r *ReviewRepository) Upsert(review *models.Review) error {
	existing, err := r.GetByWord(review.WordID)
	if err != nil {
		return err
	}

	if existing == nil {
		if r.db.DriverName() == "postgres" {
			query := `
				INSERT INTO reviews (word_id, easiness_factor, interval_days, repetitions, last_quality, last_review_date, next_review_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id, created_at, updated_at
			`
			return r.db.QueryRow(
				query,
				review.WordID,
				review.EasinessFactor,
				review.Interval,
				review.Repetitions,
				review.LastQuality,
				review.LastReviewDate,
				review.NextReviewDate,
			).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
		}

		query := `
			INSERT INTO reviews (word_id, easiness_factor, interval_days, repetitions, last_quality, last_review_date, next_review_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`
		result, err := r.db.Exec(
			query,
			review.WordID,
			review.EasinessFactor,
			review.Interval,
			review.Repetitions,
			review.LastQuality,
			review.LastReviewDate,
			review.NextReviewDate,
		)
		if err != nil {
			return fmt.Errorf("failed to create review: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		review.ID = int(id)
		return nil
	}

	review.ID = existing.ID
	query := r.db.Rebind(`
		UPDATE reviews SET
			easiness_factor = ?,
			interval_days = ?,
			repetitions = ?,
			last_quality = ?,
			last_review_date = ?,
			next_review_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE word_id = ?
	`)
	_, err = r.db.Exec(
		query,
		review.EasinessFactor,
		review.Interval,
		review.Repetitions,
		review.LastQuality,
		review.LastReviewDate,
		review.NextReviewDate,
		review.WordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %v", err)
	}
	return nil
}

// GetDue returns flashcards due for review: words that were never reviewed,
// plus words whose next review date has passed
func (r *ReviewRepository) GetDue(limit int) ([]models.DueCard, error) {
	var cards []models.DueCard
	query := r.db.Rebind(`
		SELECT
			w.id AS word_id,
			w.chinese,
			w.pinyin,
			w.english,
			COALESCE(r.repetitions, 0) AS repetitions,
			COALESCE(r.easiness_factor, 2.5) AS easiness_factor
		FROM words w
		LEFT JOIN reviews r ON r.word_id = w.id
		WHERE r.id IS NULL OR r.next_review_date <= ?
		ORDER BY repetitions ASC, easiness_factor ASC, word_id ASC
		LIMIT ?
	`)
	if err := r.db.Select(&cards, query, time.Now(), limit); err != nil {
		return nil, fmt.Errorf("failed to get due cards: %v", err)
	}
	return cards, nil
}
