package handlers

import (
	"log"

	"splitbill/internal/models"
	"splitbill/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	expenseService *services.ExpenseService
	validate       *validator.Validate
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the expense routes with the Fiber app.
func (h *ExpenseHandler) RegisterRoutes(router fiber.Router) {
	expenseRoutes := router.Group("/expenses")
	expenseRoutes.Post("/", h.HandleAddExpense)
	expenseRoutes.Post("/split", h.HandleAddExpenseSplit)
	expenseRoutes.Get("/", h.HandleGetAllExpenses)
	expenseRoutes.Get("/balance-sheet", h.HandleDownloadBalanceSheet)
	expenseRoutes.Get("/user/:userId", h.HandleGetUserExpenses)
}

// ParticipantPayload represents one participant entry in an add-expense
// request. Username is required only for the full-payload variant;
// AmountOwed and Percentage depend on the split type.
type ParticipantPayload struct {
	UserID     string   `json:"userId" validate:"required"`
	Username   string   `json:"username"`
	Type       string   `json:"type" validate:"required,oneof=equal exact percentage"`
	AmountOwed *float64 `json:"amountOwed,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// AddExpenseRequest represents the request body for the full-payload
// add-expense variant: the client supplies the creator name and every
// participant's display name.
type AddExpenseRequest struct {
	UserID       string               `json:"userId" validate:"required"`
	Username     string               `json:"username" validate:"required"`
	Amount       float64              `json:"amount" validate:"required,gt=0"`
	Participants []ParticipantPayload `json:"participants" validate:"required,min=1,dive"`
}

// AddExpenseSplitRequest represents the request body for the computed-split
// variant: display names are resolved server-side from the user directory.
type AddExpenseSplitRequest struct {
	UserID       string               `json:"userId" validate:"required"`
	Amount       float64              `json:"amount" validate:"required,gt=0"`
	Participants []ParticipantPayload `json:"participants" validate:"required,min=1,dive"`
}

func toModelParticipants(payload []ParticipantPayload) []models.Participant {
	participants := make([]models.Participant, 0, len(payload))
	for _, p := range payload {
		participants = append(participants, models.Participant{
			UserID:     p.UserID,
			Username:   p.Username,
			Type:       p.Type,
			AmountOwed: p.AmountOwed,
			Percentage: p.Percentage,
		})
	}
	return participants
}

// HandleAddExpense creates a new expense from a full participant payload.
//
// Deprecated: kept for clients that still send display names themselves;
// HandleAddExpenseSplit is the canonical creation endpoint.
func (h *ExpenseHandler) HandleAddExpense(c *fiber.Ctx) error {
	var req AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add expense request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	expense := models.Expense{
		UserID:       req.UserID,
		Username:     req.Username,
		Amount:       req.Amount,
		Participants: toModelParticipants(req.Participants),
	}
	created, err := h.expenseService.Create(&expense)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Expense added successfully",
		"expenseId": created.ID,
	})
}

// HandleAddExpenseSplit creates a new expense, resolving participant names
// and computing owed amounts server-side.
func (h *ExpenseHandler) HandleAddExpenseSplit(c *fiber.Ctx) error {
	var req AddExpenseSplitRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add expense split request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	expense := models.Expense{
		UserID:       req.UserID,
		Amount:       req.Amount,
		Participants: toModelParticipants(req.Participants),
	}
	created, err := h.expenseService.CreateComputed(&expense)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Expense added successfully",
		"expenseId": created.ID,
	})
}

// HandleGetUserExpenses retrieves every expense a user created or takes part in.
func (h *ExpenseHandler) HandleGetUserExpenses(c *fiber.Ctx) error {
	userID := c.Params("userId")
	expenses, err := h.expenseService.GetByParticipant(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Expenses retrieved successfully",
		"expenses": expenses,
	})
}

// HandleGetAllExpenses retrieves all expenses in the ledger.
func (h *ExpenseHandler) HandleGetAllExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenseService.GetAll()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Successfully fetched all the expenses",
		"expenses": expenses,
	})
}

// HandleDownloadBalanceSheet streams the full balance sheet as a CSV download.
func (h *ExpenseHandler) HandleDownloadBalanceSheet(c *fiber.Ctx) error {
	sheet, err := h.expenseService.ExportBalanceSheet()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance_sheet.csv"`)
	return c.Send(sheet)
}
