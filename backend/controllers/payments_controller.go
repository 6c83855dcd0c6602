package controllers

import (
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/config"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/models"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/services"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentsController(db *gorm.DB, cfg *config.Config) *PaymentsController {
	return &PaymentsController{DB: db, Cfg: cfg}
}

func (pc *PaymentsController) GetPlans(c *fiber.Ctx) error {
	return c.JSON(services.PlanCatalog())
}

type PaymentInput struct {
	Plan    string  `json:"plan" validate:"required,oneof=free individual business"`
	Amount  float64 `json:"amount" validate:"gte=0"`
	Method  string  `json:"method" validate:"required,oneof='Credit Card' 'Payment App'"`
	Details string  `json:"details"`
}

// CreatePayment files a payment claim for manual staff review. Nothing
// changes on the account until a staff member approves it.
func (pc *PaymentsController) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input PaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	planName := input.Plan
	for _, p := range services.PlanCatalog() {
		if p.ID == input.Plan {
			planName = p.Name
		}
	}

	payment := models.Payment{
		UserID:   userID,
		Plan:     input.Plan,
		PlanName: planName,
		Amount:   input.Amount,
		Method:   input.Method,
		Details:  input.Details,
		Status:   "pending",
	}

	if err := pc.DB.Create(&payment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create payment request")
	}

	return utils.Created(c, fiber.Map{
		"id":     payment.ID,
		"plan":   payment.Plan,
		"amount": payment.Amount,
		"status": payment.Status,
	})
}

func (pc *PaymentsController) GetMyPayments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var payments []models.Payment
	pc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&payments)

	result := []fiber.Map{}
	for _, p := range payments {
		result = append(result, fiber.Map{
			"id":        p.ID,
			"plan":      p.Plan,
			"plan_name": p.PlanName,
			"amount":    p.Amount,
			"method":    p.Method,
			"status":    p.Status,
			"date":      p.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(result)
}
