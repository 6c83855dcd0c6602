package services

import "errors"

const (
	// LessonPassThreshold is the minimum correct answers on the
	// five-question lesson quiz.
	LessonPassThreshold = 4

	// ExamPointsPerQuestion spreads the ten exam questions over 100 points.
	ExamPointsPerQuestion = 10

	// ExamPassScore is the minimum passing exam score.
	ExamPassScore = 60
)

const (
	ExamStatusPassed = "passed"
	ExamStatusFailed = "failed"
)

// ErrIncompleteAnswers is returned when a submission is missing an answer
// for one or more questions. Partial submissions are never scored.
var ErrIncompleteAnswers = errors.New("all questions must be answered")

// GradedQuestion is the minimal view of a question the evaluator needs.
type GradedQuestion struct {
	ID            uint
	CorrectAnswer int
}

// CountCorrect compares chosen option indexes against the answer key.
// answers maps question ID to the chosen option index.
func CountCorrect(questions []GradedQuestion, answers map[uint]int) (int, error) {
	correct := 0
	for _, q := range questions {
		chosen, ok := answers[q.ID]
		if !ok {
			return 0, ErrIncompleteAnswers
		}
		if chosen == q.CorrectAnswer {
			correct++
		}
	}
	return correct, nil
}

// GradeLessonQuiz grades a lesson quiz. Pass requires LessonPassThreshold
// correct answers; a fail carries no penalty and allows unlimited retries.
func GradeLessonQuiz(questions []GradedQuestion, answers map[uint]int) (correct int, passed bool, err error) {
	correct, err = CountCorrect(questions, answers)
	if err != nil {
		return 0, false, err
	}
	return correct, correct >= LessonPassThreshold, nil
}

// GradeExam grades a final exam. Each question is worth
// ExamPointsPerQuestion points; the exam is passed at ExamPassScore.
func GradeExam(questions []GradedQuestion, answers map[uint]int) (score int, status string, err error) {
	correct, err := CountCorrect(questions, answers)
	if err != nil {
		return 0, "", err
	}
	score = correct * ExamPointsPerQuestion
	status = ExamStatusFailed
	if score >= ExamPassScore {
		status = ExamStatusPassed
	}
	return score, status, nil
}
