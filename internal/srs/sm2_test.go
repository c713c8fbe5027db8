package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyCorrectAnswerAdvancesSchedule(t *testing.T) {
	sm := New()
	review := NewReview(1)

	sm.Apply(review, QualityPerfect)

	assert.Equal(t, 1, review.Repetitions)
	assert.Equal(t, sm.InitialIntervals[0], review.Interval)
	assert.Equal(t, int(QualityPerfect), review.LastQuality)
	assert.True(t, review.NextReviewDate.After(time.Now()))
}

func TestApplyUsesPresetIntervalsEarly(t *testing.T) {
	sm := New()
	review := NewReview(1)

	for i, want := range sm.InitialIntervals {
		sm.Apply(review, QualityCorrectHesitation)
		assert.Equal(t, want, review.Interval, "repetition %d", i+1)
	}
}

func TestApplyGrowsIntervalByEasinessFactor(t *testing.T) {
	sm := New()
	review := NewReview(1)
	review.Repetitions = len(sm.InitialIntervals)
	review.Interval = 30
	review.EasinessFactor = 2.5

	sm.Apply(review, QualityPerfect)

	// EF grows on a perfect answer, so the interval must grow by more
	// than the old factor.
	assert.Greater(t, review.Interval, 30)
	assert.GreaterOrEqual(t, review.EasinessFactor, 2.5)
}

func TestApplyCapsIntervalAtMax(t *testing.T) {
	sm := New()
	review := NewReview(1)
	review.Repetitions = len(sm.InitialIntervals)
	review.Interval = 400
	review.EasinessFactor = 2.5

	sm.Apply(review, QualityPerfect)

	assert.Equal(t, sm.MaxInterval, review.Interval)
}

func TestApplyFailedAnswerResetsInterval(t *testing.T) {
	sm := New()
	review := NewReview(1)
	review.Repetitions = 4
	review.Interval = 20

	sm.Apply(review, QualityIncorrect)

	assert.Equal(t, 1, review.Interval)
	// Repetition count survives a failure, it is useful for analytics.
	assert.Equal(t, 4, review.Repetitions)
}

func TestApplyFloorsEasinessFactor(t *testing.T) {
	sm := New()
	review := NewReview(1)
	review.EasinessFactor = 1.3

	for i := 0; i < 5; i++ {
		sm.Apply(review, QualityBlackout)
	}

	assert.InDelta(t, 1.3, review.EasinessFactor, 0.0001)
}

func TestIsMastered(t *testing.T) {
	sm := New()

	review := NewReview(1)
	assert.False(t, sm.IsMastered(review))

	review.Repetitions = 5
	review.LastQuality = int(QualityCorrectHesitation)
	review.Interval = 30
	assert.True(t, sm.IsMastered(review))

	review.Interval = 10
	assert.False(t, sm.IsMastered(review))
}

func TestQualityValid(t *testing.T) {
	assert.True(t, QualityBlackout.Valid())
	assert.True(t, QualityPerfect.Valid())
	assert.False(t, Quality(-1).Valid())
	assert.False(t, Quality(6).Valid())
}
