package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/api/dto"
	"github.com/fixkit/repairdesk/internal/domain"
	"github.com/fixkit/repairdesk/internal/store"
	apperrors "github.com/fixkit/repairdesk/pkg/util"
)

// TechniciansHandler manages technician endpoints.
type TechniciansHandler struct {
	store *store.Store
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(st *store.Store) *TechniciansHandler {
	return &TechniciansHandler{store: st}
}

// Create POST /technicians.
func (h *TechniciansHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	technician, err := h.store.AddTechnician(c.UserContext(), store.TechnicianInput{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": technicianResponse(technician)})
}

// List GET /technicians.
func (h *TechniciansHandler) List(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	items := make([]dto.TechnicianResponse, 0, len(state.Technicians))
	for _, technician := range state.Technicians {
		items = append(items, technicianResponse(technician))
	}
	return c.JSON(fiber.Map{"data": items})
}

func technicianResponse(technician domain.Technician) dto.TechnicianResponse {
	return dto.TechnicianResponse{ID: technician.ID, Name: technician.Name}
}
