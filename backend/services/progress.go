package services

// CourseProgress derives the 0-100 completion percentage for a course.
// A course with no lessons reports 0, never NaN.
func CourseProgress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	progress := float64(completed) / float64(total) * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}

// ExamUnlocked reports whether the final exam is open: every lesson passed
// and the course actually has lessons. Once true it stays true, since
// lesson passes are never revoked.
func ExamUnlocked(completed, total int) bool {
	return total > 0 && completed >= total
}

// LessonsConsumedEstimate is the staff-dashboard heuristic for total
// lessons viewed platform-wide: summed course progress points divided by
// the points one lesson contributes in a five-lesson course.
func LessonsConsumedEstimate(totalProgressPoints float64) int {
	return int(totalProgressPoints / 10)
}
