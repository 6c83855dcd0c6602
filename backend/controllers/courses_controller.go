package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/config"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/models"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/services"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

type AnswerInput struct {
	QuestionID uint `json:"question_id"`
	Answer     int  `json:"answer"`
}

type SubmitInput struct {
	Answers []AnswerInput `json:"answers"`
}

func answerMap(answers []AnswerInput) map[uint]int {
	m := make(map[uint]int, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a.Answer
	}
	return m
}

func parseOptions(raw string) ([]string, error) {
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil, fmt.Errorf("decode question options: %w", err)
	}
	return options, nil
}

// GetCourses lists the catalog with per-user progress and plan locks.
// Cards for courses above the user's plan stay visible but locked.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	category := c.Query("category")
	query := cc.DB.Preload("Lessons")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var progress []models.LessonProgress
	cc.DB.Where("user_id = ?", userID).Find(&progress)

	// Records are counted only against the courses' current lessons, so
	// rows left behind by a lesson replacement do not inflate progress.
	lessonCourse := make(map[uint]uint)
	for _, course := range courses {
		for _, lesson := range course.Lessons {
			lessonCourse[lesson.ID] = course.ID
		}
	}
	completedByCourse := make(map[uint]int)
	for _, p := range progress {
		if courseID, ok := lessonCourse[p.LessonID]; ok {
			completedByCourse[courseID]++
		}
	}

	result := []fiber.Map{}
	for _, course := range courses {
		completed := completedByCourse[course.ID]
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"category":    course.Category,
			"description": course.Description,
			"image":       course.Image,
			"price":       course.Price,
			"instructor":  course.Instructor,
			"min_plan":    course.MinPlan,
			"lessons":     len(course.Lessons),
			"progress":    services.CourseProgress(completed, len(course.Lessons)),
			"locked":      !services.PlanAllows(course.MinPlan, user.Plan),
		})
	}

	return c.JSON(result)
}

// loadGatedCourse fetches a course and enforces the plan gate for the user.
func (cc *CoursesController) loadGatedCourse(c *fiber.Ctx, userID uint) (*models.Course, *models.User, error) {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, nil, utils.BadRequest(c, "Invalid course ID")
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return nil, nil, utils.NotFound(c, "User not found")
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).Preload("Lessons.Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.NotFound(c, "Course not found")
		}
		return nil, nil, utils.InternalServerError(c, "Could not query database")
	}

	if !services.PlanAllows(course.MinPlan, user.Plan) {
		return nil, nil, utils.Forbidden(c, "Plan upgrade required: "+course.MinPlan)
	}

	return &course, &user, nil
}

// GetCourseDetails returns the lessons with per-user completion flags and
// quiz questions. Correct answers never leave the server.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	course, _, err := cc.loadGatedCourse(c, userID)
	if course == nil {
		return err
	}

	var progress []models.LessonProgress
	cc.DB.Where("user_id = ? AND course_id = ?", userID, course.ID).Find(&progress)

	completedLessons := make(map[uint]bool, len(progress))
	for _, p := range progress {
		completedLessons[p.LessonID] = true
	}

	lessons := []fiber.Map{}
	for _, lesson := range course.Lessons {
		questions := []fiber.Map{}
		for _, q := range lesson.Questions {
			options, err := parseOptions(q.Options)
			if err != nil {
				return utils.InternalServerError(c, "Could not decode question options")
			}
			questions = append(questions, fiber.Map{
				"id":      q.ID,
				"prompt":  q.Prompt,
				"options": options,
			})
		}
		lessons = append(lessons, fiber.Map{
			"id":           lesson.ID,
			"title":        lesson.Title,
			"duration":     lesson.Duration,
			"video_url":    lesson.VideoURL,
			"is_completed": completedLessons[lesson.ID],
			"questions":    questions,
		})
	}

	// Only records that still match a current lesson count toward progress.
	completed := 0
	for _, lesson := range course.Lessons {
		if completedLessons[lesson.ID] {
			completed++
		}
	}
	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"category":    course.Category,
			"description": course.Description,
			"image":       course.Image,
			"price":       course.Price,
			"instructor":  course.Instructor,
			"min_plan":    course.MinPlan,
			"lessons":     lessons,
		},
		"progress":      services.CourseProgress(completed, len(course.Lessons)),
		"exam_unlocked": services.ExamUnlocked(completed, len(course.Lessons)),
	})
}

// SubmitLessonQuiz grades a lesson quiz submission. A pass records the
// completion (idempotent upsert per user+lesson) and unlocks further
// progress; a fail just reports the score and leaves retries open.
func (cc *CoursesController) SubmitLessonQuiz(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	course, _, err := cc.loadGatedCourse(c, userID)
	if course == nil {
		return err
	}

	lessonID, err := strconv.Atoi(c.Params("lessonID"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson *models.Lesson
	for i := range course.Lessons {
		if course.Lessons[i].ID == uint(lessonID) {
			lesson = &course.Lessons[i]
			break
		}
	}
	if lesson == nil {
		return utils.NotFound(c, "Lesson not found")
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	graded := make([]services.GradedQuestion, 0, len(lesson.Questions))
	for _, q := range lesson.Questions {
		graded = append(graded, services.GradedQuestion{ID: q.ID, CorrectAnswer: q.CorrectAnswer})
	}

	correct, passed, err := services.GradeLessonQuiz(graded, answerMap(input.Answers))
	if err != nil {
		return utils.ValidationError(c, map[string]string{"answers": err.Error()})
	}

	if passed {
		record := models.LessonProgress{
			UserID:      userID,
			CourseID:    course.ID,
			LessonID:    lesson.ID,
			CompletedAt: time.Now(),
		}
		// Idempotent on (user_id, lesson_id): a repeat pass changes nothing.
		if err := cc.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&record).Error; err != nil {
			return utils.InternalServerError(c, "Could not save progress")
		}
	}

	completed := cc.completedLessonCount(userID, course)
	return c.JSON(fiber.Map{
		"correct":        correct,
		"total":          len(lesson.Questions),
		"passed":         passed,
		"pass_threshold": services.LessonPassThreshold,
		"progress":       services.CourseProgress(completed, len(course.Lessons)),
		"exam_unlocked":  services.ExamUnlocked(completed, len(course.Lessons)),
	})
}

// examGate checks the all-lessons-complete requirement for the course exam.
func (cc *CoursesController) examGate(c *fiber.Ctx, userID uint) (*models.Course, error) {
	course, _, err := cc.loadGatedCourse(c, userID)
	if course == nil {
		return nil, err
	}

	completed := cc.completedLessonCount(userID, course)
	if !services.ExamUnlocked(completed, len(course.Lessons)) {
		return nil, utils.Forbidden(c, "Complete all lessons to unlock the exam")
	}
	return course, nil
}

// completedLessonCount counts the user's completion records that still match
// one of the course's current lessons. Records for lessons that were since
// replaced by course authoring do not count.
func (cc *CoursesController) completedLessonCount(userID uint, course *models.Course) int {
	var progress []models.LessonProgress
	cc.DB.Where("user_id = ? AND course_id = ?", userID, course.ID).Find(&progress)

	current := make(map[uint]bool, len(course.Lessons))
	for _, lesson := range course.Lessons {
		current[lesson.ID] = true
	}

	completed := 0
	for _, p := range progress {
		if current[p.LessonID] {
			completed++
		}
	}
	return completed
}

func (cc *CoursesController) GetExam(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	course, err := cc.examGate(c, userID)
	if course == nil {
		return err
	}

	var examQuestions []models.ExamQuestion
	cc.DB.Where("course_id = ?", course.ID).Order("sequence_order").Find(&examQuestions)

	questions := []fiber.Map{}
	for _, q := range examQuestions {
		options, err := parseOptions(q.Options)
		if err != nil {
			return utils.InternalServerError(c, "Could not decode question options")
		}
		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"prompt":  q.Prompt,
			"options": options,
		})
	}

	return c.JSON(fiber.Map{
		"course_id":           course.ID,
		"course_title":        course.Title,
		"questions":           questions,
		"points_per_question": services.ExamPointsPerQuestion,
		"pass_score":          services.ExamPassScore,
	})
}

func (cc *CoursesController) SubmitExam(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	course, err := cc.examGate(c, userID)
	if course == nil {
		return err
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var examQuestions []models.ExamQuestion
	cc.DB.Where("course_id = ?", course.ID).Order("sequence_order").Find(&examQuestions)

	graded := make([]services.GradedQuestion, 0, len(examQuestions))
	for _, q := range examQuestions {
		graded = append(graded, services.GradedQuestion{ID: q.ID, CorrectAnswer: q.CorrectAnswer})
	}

	score, status, err := services.GradeExam(graded, answerMap(input.Answers))
	if err != nil {
		return utils.ValidationError(c, map[string]string{"answers": err.Error()})
	}

	result := models.ExamResult{
		UserID:   userID,
		CourseID: course.ID,
		Score:    score,
		Status:   status,
	}
	if err := cc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save exam result")
	}

	return c.JSON(fiber.Map{
		"id":     result.ID,
		"score":  score,
		"status": status,
		"date":   result.CreatedAt.Format("2006-01-02"),
	})
}

// GetMyExams returns the student's exam history across courses.
func (cc *CoursesController) GetMyExams(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var results []models.ExamResult
	cc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&results)

	courseTitles := make(map[uint]string)
	var courses []models.Course
	cc.DB.Find(&courses)
	for _, course := range courses {
		courseTitles[course.ID] = course.Title
	}

	exams := []fiber.Map{}
	for _, r := range results {
		exams = append(exams, fiber.Map{
			"id":          r.ID,
			"course_name": courseTitles[r.CourseID],
			"score":       r.Score,
			"status":      r.Status,
			"date":        r.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(exams)
}
