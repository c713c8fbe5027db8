package models

import "time"

// Review holds the SM-2 flashcard state for a single vocabulary word
type Review struct {
	ID             int       `json:"id" db:"id"`
	WordID         int       `json:"word_id" db:"word_id"`
	EasinessFactor float64   `json:"easiness_factor" db:"easiness_factor"`
	Interval       int       `json:"interval" db:"interval_days"` // days until next review
	Repetitions    int       `json:"repetitions" db:"repetitions"`
	LastQuality    int       `json:"last_quality" db:"last_quality"`
	LastReviewDate time.Time `json:"last_review_date" db:"last_review_date"`
	NextReviewDate time.Time `json:"next_review_date" db:"next_review_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// DueCard is a review joined with its word, as served to the flashcard UI
type DueCard struct {
	WordID         int     `json:"word_id" db:"word_id"`
	Chinese        string  `json:"chinese" db:"chinese"`
	Pinyin         string  `json:"pinyin" db:"pinyin"`
	English        string  `json:"english" db:"english"`
	Repetitions    int     `json:"repetitions" db:"repetitions"`
	EasinessFactor float64 `json:"easiness_factor" db:"easiness_factor"`
}
