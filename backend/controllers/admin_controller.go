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
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// courseRollup is one student's derived standing in one course.
type courseRollup struct {
	CourseID    uint    `json:"course_id"`
	CourseTitle string  `json:"course_title"`
	Progress    float64 `json:"progress"`
	IsCompleted bool    `json:"is_completed"`
}

// userRollup is the staff-side view of a student: contact data plus
// progress and exam history derived from the raw records.
type userRollup struct {
	ID       uint           `json:"id"`
	FullName string         `json:"full_name"`
	Email    string         `json:"email"`
	Plan     string         `json:"plan"`
	Phone    string         `json:"phone"`
	Country  string         `json:"country"`
	JoinDate string         `json:"join_date"`
	Courses  []courseRollup `json:"courses"`
	Exams    []fiber.Map    `json:"exams"`
}

// rollupStudents cross-references every student against all progress and
// exam records. The per-course formula matches the student-session one.
func (ac *AdminController) rollupStudents() ([]userRollup, error) {
	var students []models.User
	if err := ac.DB.Where("role = ?", "student").Order("id").Find(&students).Error; err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := ac.DB.Preload("Lessons").Find(&courses).Error; err != nil {
		return nil, err
	}
	lessonCounts := make(map[uint]int, len(courses))
	courseTitles := make(map[uint]string, len(courses))
	lessonCourse := make(map[uint]uint)
	for _, course := range courses {
		lessonCounts[course.ID] = len(course.Lessons)
		courseTitles[course.ID] = course.Title
		for _, lesson := range course.Lessons {
			lessonCourse[lesson.ID] = course.ID
		}
	}

	var progress []models.LessonProgress
	ac.DB.Find(&progress)
	var exams []models.ExamResult
	ac.DB.Order("created_at").Find(&exams)

	// (user, course) -> completed lesson count. Records whose lesson was
	// since replaced by course authoring do not count.
	completed := make(map[uint]map[uint]int)
	for _, p := range progress {
		courseID, ok := lessonCourse[p.LessonID]
		if !ok {
			continue
		}
		if completed[p.UserID] == nil {
			completed[p.UserID] = make(map[uint]int)
		}
		completed[p.UserID][courseID]++
	}

	rollups := make([]userRollup, 0, len(students))
	for _, s := range students {
		r := userRollup{
			ID:       s.ID,
			FullName: s.FullName,
			Email:    s.Email,
			Plan:     s.Plan,
			Phone:    s.Phone,
			Country:  s.Country,
			JoinDate: s.CreatedAt.Format("2006-01-02"),
			Courses:  []courseRollup{},
			Exams:    []fiber.Map{},
		}
		for courseID, done := range completed[s.ID] {
			pct := services.CourseProgress(done, lessonCounts[courseID])
			r.Courses = append(r.Courses, courseRollup{
				CourseID:    courseID,
				CourseTitle: courseTitles[courseID],
				Progress:    pct,
				IsCompleted: pct >= 100,
			})
		}
		for _, e := range exams {
			if e.UserID != s.ID {
				continue
			}
			r.Exams = append(r.Exams, fiber.Map{
				"id":          e.ID,
				"course_name": courseTitles[e.CourseID],
				"score":       e.Score,
				"status":      e.Status,
				"date":        e.CreatedAt.Format("2006-01-02"),
			})
		}
		rollups = append(rollups, r)
	}
	return rollups, nil
}

// GetSummary returns the staff dashboard totals. All figures report zero
// on an empty platform.
func (ac *AdminController) GetSummary(c *fiber.Ctx) error {
	rollups, err := ac.rollupStudents()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var revenue float64
	ac.DB.Model(&models.Payment{}).
		Where("status = ?", "approved").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	var pendingPayments int64
	ac.DB.Model(&models.Payment{}).Where("status = ?", "pending").Count(&pendingPayments)

	totalProgressPoints := 0.0
	enrollments := make(map[uint]int)
	for _, r := range rollups {
		for _, cr := range r.Courses {
			totalProgressPoints += cr.Progress
			enrollments[cr.CourseID]++
		}
	}

	var courses []models.Course
	ac.DB.Preload("Lessons").Order("id").Find(&courses)
	courseStats := []fiber.Map{}
	for _, course := range courses {
		courseStats = append(courseStats, fiber.Map{
			"id":       course.ID,
			"title":    course.Title,
			"category": course.Category,
			"lessons":  len(course.Lessons),
			"enrolled": enrollments[course.ID],
		})
	}

	return c.JSON(fiber.Map{
		"students":         len(rollups),
		"revenue":          revenue,
		"pending_payments": pendingPayments,
		"lessons_consumed": services.LessonsConsumedEstimate(totalProgressPoints),
		"courses":          courseStats,
	})
}

func (ac *AdminController) GetUsers(c *fiber.Ctx) error {
	rollups, err := ac.rollupStudents()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(rollups)
}

func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	if user.Role == "staff" {
		return utils.Forbidden(c, "Staff accounts cannot be deleted here")
	}

	if err := ac.DB.Delete(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	ac.audit(c, "user_deleted", fmt.Sprintf("deleted student %s", user.Email))
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": user.ID})
}

// GetGrades lists every exam attempt platform-wide.
func (ac *AdminController) GetGrades(c *fiber.Ctx) error {
	var results []models.ExamResult
	ac.DB.Order("created_at desc").Find(&results)

	userNames := make(map[uint]string)
	var users []models.User
	ac.DB.Find(&users)
	for _, u := range users {
		userNames[u.ID] = u.FullName
	}

	courseTitles := make(map[uint]string)
	var courses []models.Course
	ac.DB.Find(&courses)
	for _, course := range courses {
		courseTitles[course.ID] = course.Title
	}

	grades := []fiber.Map{}
	for _, r := range results {
		grades = append(grades, fiber.Map{
			"id":          r.ID,
			"student":     userNames[r.UserID],
			"course_name": courseTitles[r.CourseID],
			"score":       r.Score,
			"status":      r.Status,
			"date":        r.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(grades)
}

func (ac *AdminController) GetPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	ac.DB.Order("created_at desc").Find(&payments)

	var users []models.User
	ac.DB.Find(&users)
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	result := []fiber.Map{}
	for _, p := range payments {
		u := byID[p.UserID]
		result = append(result, fiber.Map{
			"id":         p.ID,
			"user_email": u.Email,
			"user_name":  u.FullName,
			"plan":       p.Plan,
			"plan_name":  p.PlanName,
			"amount":     p.Amount,
			"method":     p.Method,
			"details":    p.Details,
			"status":     p.Status,
			"date":       p.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(result)
}

type PaymentDecisionInput struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// DecidePayment moves a pending claim to approved or rejected. The status
// change and the plan overwrite commit together; a claim that already left
// pending cannot be decided again.
func (ac *AdminController) DecidePayment(c *fiber.Ctx) error {
	paymentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid payment ID")
	}

	var input PaymentDecisionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	status := "rejected"
	if input.Action == "approve" {
		status = "approved"
	}

	var payment models.Payment
	txErr := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != "pending" {
			return errDecisionTaken
		}

		payment.Status = status
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if status == "approved" {
			// Plan overwrite is unconditional, downgrades included.
			if err := tx.Model(&models.User{}).
				Where("id = ?", payment.UserID).
				Update("plan", payment.Plan).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Payment not found")
		}
		if errors.Is(txErr, errDecisionTaken) {
			return utils.Conflict(c, "Payment has already been decided")
		}
		return utils.InternalServerError(c, "Could not update payment")
	}

	ac.audit(c, "payment_"+status, fmt.Sprintf("payment %d (%s, %.2f)", payment.ID, payment.PlanName, payment.Amount))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":     payment.ID,
		"status": payment.Status,
		"plan":   payment.Plan,
	})
}

var errDecisionTaken = errors.New("payment already decided")

type LessonInput struct {
	Title     string          `json:"title" validate:"required"`
	Duration  string          `json:"duration"`
	VideoURL  string          `json:"video_url"`
	Questions []QuestionInput `json:"questions"`
}

type QuestionInput struct {
	Prompt        string   `json:"prompt" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type CourseInput struct {
	Title         string          `json:"title" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Price         float64         `json:"price" validate:"gte=0"`
	Instructor    string          `json:"instructor"`
	MinPlan       string          `json:"min_plan" validate:"required,oneof=free individual business"`
	Lessons       []LessonInput   `json:"lessons"`
	ExamQuestions []QuestionInput `json:"exam_questions"`
}

func buildLessons(inputs []LessonInput) ([]models.Lesson, error) {
	lessons := make([]models.Lesson, 0, len(inputs))
	for i, li := range inputs {
		lesson := models.Lesson{
			Title:         li.Title,
			Duration:      li.Duration,
			VideoURL:      li.VideoURL,
			SequenceOrder: i,
		}
		for j, qi := range li.Questions {
			opts, err := json.Marshal(qi.Options)
			if err != nil {
				return nil, err
			}
			lesson.Questions = append(lesson.Questions, models.Question{
				Prompt:        qi.Prompt,
				Options:       string(opts),
				CorrectAnswer: qi.CorrectAnswer,
				SequenceOrder: j,
			})
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func buildExamQuestions(inputs []QuestionInput) ([]models.ExamQuestion, error) {
	questions := make([]models.ExamQuestion, 0, len(inputs))
	for i, qi := range inputs {
		opts, err := json.Marshal(qi.Options)
		if err != nil {
			return nil, err
		}
		questions = append(questions, models.ExamQuestion{
			Prompt:        qi.Prompt,
			Options:       string(opts),
			CorrectAnswer: qi.CorrectAnswer,
			SequenceOrder: i,
		})
	}
	return questions, nil
}

func (ac *AdminController) CreateCourse(c *fiber.Ctx) error {
	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	lessons, err := buildLessons(input.Lessons)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode questions")
	}
	examQuestions, err := buildExamQuestions(input.ExamQuestions)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode questions")
	}

	course := models.Course{
		Title:         input.Title,
		Category:      input.Category,
		Description:   input.Description,
		Image:         input.Image,
		Price:         input.Price,
		Instructor:    input.Instructor,
		MinPlan:       input.MinPlan,
		Lessons:       lessons,
		ExamQuestions: examQuestions,
	}

	if err := ac.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	ac.audit(c, "course_created", course.Title)
	return utils.Created(c, fiber.Map{"id": course.ID})
}

// UpdateCourse overwrites the course metadata and replaces its lessons and
// exam questions wholesale: delete then reinsert, all in one transaction.
func (ac *AdminController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lessons, err := buildLessons(input.Lessons)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode questions")
	}
	examQuestions, err := buildExamQuestions(input.ExamQuestions)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode questions")
	}

	txErr := ac.DB.Transaction(func(tx *gorm.DB) error {
		course.Title = input.Title
		course.Category = input.Category
		course.Description = input.Description
		course.Image = input.Image
		course.Price = input.Price
		course.Instructor = input.Instructor
		course.MinPlan = input.MinPlan
		if err := tx.Save(&course).Error; err != nil {
			return err
		}

		var oldLessons []models.Lesson
		if err := tx.Where("course_id = ?", course.ID).Find(&oldLessons).Error; err != nil {
			return err
		}
		for _, l := range oldLessons {
			if err := tx.Where("lesson_id = ?", l.ID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.ExamQuestion{}).Error; err != nil {
			return err
		}

		for i := range lessons {
			lessons[i].CourseID = course.ID
		}
		if len(lessons) > 0 {
			if err := tx.Create(&lessons).Error; err != nil {
				return err
			}
		}
		for i := range examQuestions {
			examQuestions[i].CourseID = course.ID
		}
		if len(examQuestions) > 0 {
			if err := tx.Create(&examQuestions).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	ac.audit(c, "course_updated", course.Title)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": course.ID})
}

func (ac *AdminController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	if err := ac.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	ac.audit(c, "course_deleted", course.Title)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": course.ID})
}

func (ac *AdminController) GetAuditLogs(c *fiber.Ctx) error {
	var logs []models.AuditLog
	ac.DB.Order("created_at desc").Limit(200).Find(&logs)

	result := []fiber.Map{}
	for _, l := range logs {
		result = append(result, fiber.Map{
			"id":      l.ID,
			"action":  l.Action,
			"user":    l.User,
			"details": l.Details,
			"date":    l.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return c.JSON(result)
}

// audit records a staff-sensitive action. Failures are logged nowhere
// else, the action itself has already committed.
func (ac *AdminController) audit(c *fiber.Ctx, action, details string) {
	actor := ""
	if userID, ok := c.Locals("user_id").(uint); ok {
		var user models.User
		if err := ac.DB.First(&user, userID).Error; err == nil {
			actor = user.Email
		}
	}
	ac.DB.Create(&models.AuditLog{Action: action, User: actor, Details: details})
}

// ExportStudentsReport flattens the student roll-up to csv, xlsx or a
// plain-text summary, selected by the format query parameter.
func (ac *AdminController) ExportStudentsReport(c *fiber.Ctx) error {
	rollups, err := ac.rollupStudents()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	table := services.ReportTable{
		Title:   "Estudiantes",
		Headers: []string{"ID", "Nombre", "Email", "Plan", "País", "Cursos Iniciados", "Progreso Promedio", "Exámenes"},
	}
	for _, r := range rollups {
		avg := 0.0
		for _, cr := range r.Courses {
			avg += cr.Progress
		}
		if len(r.Courses) > 0 {
			avg /= float64(len(r.Courses))
		}
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.FullName,
			r.Email,
			r.Plan,
			r.Country,
			strconv.Itoa(len(r.Courses)),
			fmt.Sprintf("%.0f%%", avg),
			strconv.Itoa(len(r.Exams)),
		})
	}

	return sendReport(c, table, "estudiantes")
}

func (ac *AdminController) ExportFinanceReport(c *fiber.Ctx) error {
	var payments []models.Payment
	ac.DB.Order("created_at").Find(&payments)

	var users []models.User
	ac.DB.Find(&users)
	emails := make(map[uint]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	table := services.ReportTable{
		Title:   "Financiero",
		Headers: []string{"ID", "Usuario", "Plan", "Monto", "Método", "Estado", "Fecha"},
	}
	for _, p := range payments {
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			emails[p.UserID],
			p.PlanName,
			fmt.Sprintf("%.2f", p.Amount),
			p.Method,
			p.Status,
			p.CreatedAt.Format("2006-01-02"),
		})
	}

	return sendReport(c, table, "financiero")
}

func sendReport(c *fiber.Ctx, table services.ReportTable, filename string) error {
	switch c.Query("format", "csv") {
	case "xlsx":
		data, err := table.XLSX()
		if err != nil {
			return utils.InternalServerError(c, "Could not build report")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.xlsx"`)
		return c.Send(data)
	case "summary":
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(table.Summary(time.Now()))
	default:
		data, err := table.CSV()
		if err != nil {
			return utils.InternalServerError(c, "Could not build report")
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.csv"`)
		return c.Send(data)
	}
}
