package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseProgress(t *testing.T) {
	assert.Equal(t, 0.0, CourseProgress(0, 5))
	assert.Equal(t, 60.0, CourseProgress(3, 5))
	assert.Equal(t, 100.0, CourseProgress(5, 5))

	// Zero-lesson course reports 0, never NaN
	assert.Equal(t, 0.0, CourseProgress(0, 0))
	assert.Equal(t, 0.0, CourseProgress(3, 0))

	// Stale extra records cannot push past 100
	assert.Equal(t, 100.0, CourseProgress(6, 5))
}

func TestCourseProgressIdempotent(t *testing.T) {
	first := CourseProgress(3, 5)
	second := CourseProgress(3, 5)
	assert.Equal(t, first, second)
}

func TestExamUnlocked(t *testing.T) {
	assert.False(t, ExamUnlocked(0, 5))
	assert.False(t, ExamUnlocked(4, 5))
	assert.True(t, ExamUnlocked(5, 5))

	// An empty course never unlocks its exam
	assert.False(t, ExamUnlocked(0, 0))
}

// Completing a five-lesson course one lesson at a time: 60% and locked
// after the third pass, 100% and unlocked after the fifth. Unlocking is
// monotonic because completions are never removed.
func TestLessonByLessonScenario(t *testing.T) {
	total := 5
	wantProgress := []float64{20, 40, 60, 80, 100}

	unlockedSeen := false
	for completed := 1; completed <= total; completed++ {
		assert.Equal(t, wantProgress[completed-1], CourseProgress(completed, total))

		unlocked := ExamUnlocked(completed, total)
		if completed == 3 {
			assert.False(t, unlocked)
		}
		if completed == total {
			assert.True(t, unlocked)
		}
		if unlockedSeen {
			assert.True(t, unlocked)
		}
		unlockedSeen = unlockedSeen || unlocked
	}
}

func TestLessonsConsumedEstimate(t *testing.T) {
	assert.Equal(t, 0, LessonsConsumedEstimate(0))
	// One user at 60% in one course reads as six lessons
	assert.Equal(t, 6, LessonsConsumedEstimate(60))
	assert.Equal(t, 25, LessonsConsumedEstimate(100+100+50))
}
