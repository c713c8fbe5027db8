package models

import "time"

// Word represents a Chinese vocabulary entry to be learned
type Word struct {
	ID        int       `json:"id" db:"id"`
	Chinese   string    `json:"chinese" db:"chinese"`
	Pinyin    string    `json:"pinyin" db:"pinyin"`
	English   string    `json:"english" db:"english"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
