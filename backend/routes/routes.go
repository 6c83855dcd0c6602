package routes

import (
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/config"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/controllers"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/staff/login", authController.StaffLogin)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	staffMiddleware := middleware.StaffMiddleware(cfg)

	// Plans are public so the pricing page works before registration
	paymentsController := controllers.NewPaymentsController(db, cfg)
	app.Get("/api/plans", paymentsController.GetPlans)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Get("/api/user/stats", authMiddleware, userController.GetDashboardStats)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/lessons/:lessonID/submit", coursesController.SubmitLessonQuiz)
	courses.Get("/:id/exam", coursesController.GetExam)
	courses.Post("/:id/exam", coursesController.SubmitExam)
	app.Get("/api/exams", authMiddleware, coursesController.GetMyExams)

	// Payment routes
	app.Post("/api/payments", authMiddleware, paymentsController.CreatePayment)
	app.Get("/api/payments", authMiddleware, paymentsController.GetMyPayments)

	// Support routes
	supportController := controllers.NewSupportController(db, cfg)
	app.Post("/api/support", authMiddleware, supportController.CreateTicket)
	app.Get("/api/support", authMiddleware, supportController.GetMyTickets)

	// Staff routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", staffMiddleware)
	admin.Get("/summary", adminController.GetSummary)
	admin.Get("/users", adminController.GetUsers)
	admin.Delete("/users/:id", adminController.DeleteUser)
	admin.Get("/grades", adminController.GetGrades)
	admin.Get("/payments", adminController.GetPayments)
	admin.Put("/payments/:id", adminController.DecidePayment)
	admin.Post("/courses", adminController.CreateCourse)
	admin.Put("/courses/:id", adminController.UpdateCourse)
	admin.Delete("/courses/:id", adminController.DeleteCourse)
	admin.Get("/logs", adminController.GetAuditLogs)
	admin.Get("/reports/students", adminController.ExportStudentsReport)
	admin.Get("/reports/finance", adminController.ExportFinanceReport)
	admin.Get("/support", supportController.GetAllTickets)
	admin.Put("/support/:id", supportController.ResolveTicket)
}
