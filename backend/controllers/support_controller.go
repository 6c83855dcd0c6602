package controllers

import (
	"strconv"

	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/config"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/models"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupportController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSupportController(db *gorm.DB, cfg *config.Config) *SupportController {
	return &SupportController{DB: db, Cfg: cfg}
}

type TicketInput struct {
	Message string `json:"message" validate:"required,min=5"`
}

func (sc *SupportController) CreateTicket(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input TicketInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	ticket := models.SupportTicket{
		UserID:  userID,
		Message: input.Message,
		Status:  "open",
	}

	if err := sc.DB.Create(&ticket).Error; err != nil {
		return utils.InternalServerError(c, "Could not create ticket")
	}

	return utils.Created(c, fiber.Map{
		"id":     ticket.ID,
		"status": ticket.Status,
	})
}

func (sc *SupportController) GetMyTickets(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var tickets []models.SupportTicket
	sc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&tickets)

	result := []fiber.Map{}
	for _, t := range tickets {
		result = append(result, fiber.Map{
			"id":      t.ID,
			"message": t.Message,
			"status":  t.Status,
			"date":    t.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(result)
}

// ResolveTicket is the staff side of the support queue.
func (sc *SupportController) ResolveTicket(c *fiber.Ctx) error {
	ticketID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid ticket ID")
	}

	var ticket models.SupportTicket
	if err := sc.DB.First(&ticket, ticketID).Error; err != nil {
		return utils.NotFound(c, "Ticket not found")
	}

	ticket.Status = "resolved"
	if err := sc.DB.Save(&ticket).Error; err != nil {
		return utils.InternalServerError(c, "Could not update ticket")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":     ticket.ID,
		"status": ticket.Status,
	})
}

func (sc *SupportController) GetAllTickets(c *fiber.Ctx) error {
	var tickets []models.SupportTicket
	sc.DB.Order("created_at desc").Find(&tickets)

	result := []fiber.Map{}
	for _, t := range tickets {
		result = append(result, fiber.Map{
			"id":      t.ID,
			"user_id": t.UserID,
			"message": t.Message,
			"status":  t.Status,
			"date":    t.CreatedAt.Format("2006-01-02"),
		})
	}

	return c.JSON(result)
}
