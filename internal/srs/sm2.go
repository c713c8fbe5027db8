// Package srs implements the SuperMemo-2 spaced-repetition algorithm used
// to schedule flashcard reviews.
package srs

import (
	"time"

	"github.com/example/hanzitutor/pkg/models"
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Quality at or above which an answer counts as correct
	PassThreshold Quality
	// Maximum repetition interval in days
	MaxInterval int
	// Preset intervals (in days) used for the first few repetitions
	InitialIntervals []int
}

// New creates an SM2 instance with the default settings
func New() *SM2 {
	return &SM2{
		PassThreshold:    QualityCorrectDifficult,
		MaxInterval:      365,
		InitialIntervals: []int{1, 2, 3, 7, 10, 15, 20, 30},
	}
}

// Quality represents the quality of a flashcard answer in SM-2
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect Quality = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar Quality = 2
	// Correct response but required significant effort
	QualityCorrectDifficult Quality = 3
	// Correct response after some hesitation
	QualityCorrectHesitation Quality = 4
	// Perfect response with no hesitation
	QualityPerfect Quality = 5
)

// Valid reports whether q is within the SM-2 grade scale
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Apply updates the review state in place according to the SM-2 rules
func (sm *SM2) Apply(review *models.Review, quality Quality) {
	now := time.Now()
	review.LastReviewDate = now
	review.LastQuality = int(quality)

	// Update the easiness factor (EF), floored at 1.3
	newEF := review.EasinessFactor +
		(0.1 - (5.0-float64(quality))*(0.08+(5.0-float64(quality))*0.02))
	if newEF < 1.3 {
		newEF = 1.3
	}
	review.EasinessFactor = newEF

	if quality >= sm.PassThreshold {
		var nextInterval int
		if review.Repetitions < len(sm.InitialIntervals) {
			nextInterval = sm.InitialIntervals[review.Repetitions]
		} else {
			nextInterval = int(float64(review.Interval) * review.EasinessFactor)
		}
		if nextInterval > sm.MaxInterval {
			nextInterval = sm.MaxInterval
		}

		review.Interval = nextInterval
		review.Repetitions++
	} else {
		// Failed answer: schedule for tomorrow but keep the repetition
		// count for analytics
		review.Interval = 1
	}

	review.NextReviewDate = now.AddDate(0, 0, review.Interval)
}

// NewReview returns the initial review state for a word that has never been
// reviewed
func NewReview(wordID int) *models.Review {
	return &models.Review{
		WordID:         wordID,
		EasinessFactor: 2.5,
		Interval:       1,
		Repetitions:    0,
		LastQuality:    int(QualityCorrectDifficult),
	}
}

// IsMastered determines if a word is considered "mastered": reviewed at
// least 5 times, last answer 4 or better, and interval at least 30 days
func (sm *SM2) IsMastered(review *models.Review) bool {
	return review.Repetitions >= 5 &&
		review.LastQuality >= int(QualityCorrectHesitation) &&
		review.Interval >= 30
}
