package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress marks a lesson as passed for a user. One row per
// (user, lesson) pair; writes go through an upsert so repeated passes
// never duplicate. Course progress is always recomputed from these rows.
type LessonProgress struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex:idx_user_lesson"`
	CourseID    uint
	LessonID    uint `gorm:"uniqueIndex:idx_user_lesson"`
	CompletedAt time.Time
}

type ExamResult struct {
	gorm.Model
	UserID   uint
	CourseID uint
	Score    int    // 0-100
	Status   string // passed, failed
}
