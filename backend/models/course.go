package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title         string
	Category      string
	Description   string
	Image         string
	Price         float64
	Instructor    string
	MinPlan       string `gorm:"default:free"` // free, individual, business
	Lessons       []Lesson
	ExamQuestions []ExamQuestion
}

type Lesson struct {
	gorm.Model
	CourseID      uint
	Title         string
	Duration      string // display label, e.g. "15 min"
	VideoURL      string
	SequenceOrder int
	Questions     []Question
}

type Question struct {
	gorm.Model
	LessonID      uint
	Prompt        string
	Options       string // JSON array of options
	CorrectAnswer int    // index into Options
	SequenceOrder int
}

// ExamQuestion is the final-exam counterpart of Question, attached to the
// course rather than a lesson. Ten per course, each worth ten points.
type ExamQuestion struct {
	gorm.Model
	CourseID      uint
	Prompt        string
	Options       string // JSON array of options
	CorrectAnswer int
	SequenceOrder int
}
