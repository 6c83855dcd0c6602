package controllers

import (
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/config"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/models"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/services"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      user.Role,
		"plan":      user.Plan,
		"phone":     user.Phone,
		"country":   user.Country,
		"join_date": user.CreatedAt.Format("2006-01-02"),
	})
}

type UpdateProfileInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Country != "" {
		user.Country = input.Country
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return utils.ValidationError(c, map[string]string{"password": "Value is too short"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.Cfg.BcryptCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":        user.ID,
		"full_name": user.FullName,
		"phone":     user.Phone,
		"country":   user.Country,
	})
}

// GetDashboardStats returns the student home-page counters: completed
// courses, exam average, certificates earned.
func (uc *UserController) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var courses []models.Course
	uc.DB.Preload("Lessons").Find(&courses)

	var progress []models.LessonProgress
	uc.DB.Where("user_id = ?", userID).Find(&progress)

	// Count only records matching a current lesson; stale rows from
	// replaced lessons are ignored.
	lessonCourse := make(map[uint]uint)
	for _, course := range courses {
		for _, lesson := range course.Lessons {
			lessonCourse[lesson.ID] = course.ID
		}
	}
	completedByCourse := make(map[uint]int)
	lessonsCompleted := 0
	for _, p := range progress {
		if courseID, ok := lessonCourse[p.LessonID]; ok {
			completedByCourse[courseID]++
			lessonsCompleted++
		}
	}

	coursesCompleted := 0
	for _, course := range courses {
		if services.ExamUnlocked(completedByCourse[course.ID], len(course.Lessons)) {
			coursesCompleted++
		}
	}

	var exams []models.ExamResult
	uc.DB.Where("user_id = ?", userID).Find(&exams)

	totalScore := 0
	certificates := 0
	for _, e := range exams {
		totalScore += e.Score
		if e.Status == services.ExamStatusPassed {
			certificates++
		}
	}

	averageScore := 0.0
	if len(exams) > 0 {
		averageScore = float64(totalScore) / float64(len(exams))
	}

	return c.JSON(fiber.Map{
		"courses_completed": coursesCompleted,
		"average_score":     averageScore,
		"certificates":      certificates,
		"lessons_completed": lessonsCompleted,
	})
}
