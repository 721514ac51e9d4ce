package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/api/dto"
	"github.com/fixkit/repairdesk/internal/domain"
	"github.com/fixkit/repairdesk/internal/store"
	apperrors "github.com/fixkit/repairdesk/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	store *store.Store
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(st *store.Store) *CustomersHandler {
	return &CustomersHandler{store: st}
}

// Create POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	customer, err := h.store.AddCustomer(c.UserContext(), store.CustomerInput{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// List GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	items := make([]dto.CustomerResponse, 0, len(state.Customers))
	for _, customer := range state.Customers {
		items = append(items, customerResponse(customer))
	}
	return c.JSON(fiber.Map{"data": items})
}

func customerResponse(customer domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:    customer.ID,
		Name:  customer.Name,
		Phone: customer.Phone,
		Email: customer.Email,
	}
}
