package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fiveQuestions() []GradedQuestion {
	return []GradedQuestion{
		{ID: 1, CorrectAnswer: 0},
		{ID: 2, CorrectAnswer: 1},
		{ID: 3, CorrectAnswer: 2},
		{ID: 4, CorrectAnswer: 0},
		{ID: 5, CorrectAnswer: 1},
	}
}

func tenQuestions() []GradedQuestion {
	questions := make([]GradedQuestion, 10)
	for i := range questions {
		questions[i] = GradedQuestion{ID: uint(i + 1), CorrectAnswer: 0}
	}
	return questions
}

func TestCountCorrect(t *testing.T) {
	questions := fiveQuestions()

	correct, err := CountCorrect(questions, map[uint]int{1: 0, 2: 1, 3: 2, 4: 0, 5: 1})
	assert.NoError(t, err)
	assert.Equal(t, 5, correct)

	correct, err = CountCorrect(questions, map[uint]int{1: 2, 2: 2, 3: 0, 4: 2, 5: 0})
	assert.NoError(t, err)
	assert.Equal(t, 0, correct)
}

func TestCountCorrectIncompleteAnswers(t *testing.T) {
	questions := fiveQuestions()

	// Question 5 left unanswered
	_, err := CountCorrect(questions, map[uint]int{1: 0, 2: 1, 3: 2, 4: 0})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = CountCorrect(questions, map[uint]int{})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

func TestGradeLessonQuiz(t *testing.T) {
	questions := fiveQuestions()

	tests := []struct {
		name        string
		answers     map[uint]int
		wantCorrect int
		wantPassed  bool
	}{
		{"all correct", map[uint]int{1: 0, 2: 1, 3: 2, 4: 0, 5: 1}, 5, true},
		{"four of five passes", map[uint]int{1: 0, 2: 1, 3: 2, 4: 0, 5: 2}, 4, true},
		{"three of five fails", map[uint]int{1: 0, 2: 1, 3: 2, 4: 1, 5: 2}, 3, false},
		{"none correct", map[uint]int{1: 1, 2: 0, 3: 0, 4: 1, 5: 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, passed, err := GradeLessonQuiz(questions, tt.answers)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, correct)
			assert.Equal(t, tt.wantPassed, passed)
		})
	}
}

func TestGradeExam(t *testing.T) {
	questions := tenQuestions()

	answersWithCorrect := func(n int) map[uint]int {
		answers := make(map[uint]int, 10)
		for i := 1; i <= 10; i++ {
			if i <= n {
				answers[uint(i)] = 0
			} else {
				answers[uint(i)] = 1
			}
		}
		return answers
	}

	tests := []struct {
		correct    int
		wantScore  int
		wantStatus string
	}{
		{10, 100, ExamStatusPassed},
		{6, 60, ExamStatusPassed},
		{5, 50, ExamStatusFailed},
		{0, 0, ExamStatusFailed},
	}

	for _, tt := range tests {
		score, status, err := GradeExam(questions, answersWithCorrect(tt.correct))
		assert.NoError(t, err)
		assert.Equal(t, tt.wantScore, score)
		assert.Equal(t, tt.wantStatus, status)
	}
}

func TestGradeExamIncomplete(t *testing.T) {
	_, _, err := GradeExam(tenQuestions(), map[uint]int{1: 0})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}
