package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/api/dto"
	"github.com/fixkit/repairdesk/internal/query"
	"github.com/fixkit/repairdesk/internal/store"
	apperrors "github.com/fixkit/repairdesk/pkg/util"
)

// unassignedLabel is rendered for tickets without a resolvable technician.
const unassignedLabel = "Unassigned"

// TicketsHandler manages repair ticket endpoints.
type TicketsHandler struct {
	store *store.Store
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(st *store.Store) *TicketsHandler {
	return &TicketsHandler{store: st}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CustomerID == "" || req.DeviceID == "" || strings.TrimSpace(req.ProblemDescription) == "" {
		return apperrors.NewValidationError("customerId, deviceId, problemDescription required", nil)
	}
	if req.Status != "" && !req.Status.Valid() {
		return apperrors.NewValidationError("unknown status", fiber.Map{"status": req.Status})
	}
	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		return apperrors.NewValidationError("estimatedCost must be non-negative", nil)
	}

	ticket, err := h.store.AddTicket(c.UserContext(), store.TicketInput{
		CustomerID:         req.CustomerID,
		DeviceID:           req.DeviceID,
		ProblemDescription: strings.TrimSpace(req.ProblemDescription),
		Status:             req.Status,
		TechnicianID:       req.TechnicianID,
		EstimatedCost:      req.EstimatedCost,
		Notes:              req.Notes,
	})
	if err != nil {
		return err
	}
	state := h.store.Snapshot()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketRowResponse(query.Row(state, ticket))})
}

// List GET /tickets?status=&q=.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	rows := query.Tickets(state, query.TicketFilter{
		Status: c.Query("status"),
		Search: c.Query("q"),
	})
	items := make([]dto.TicketRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, ticketRowResponse(row))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	ticket, ok := state.FindTicket(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("ticket", fiber.Map{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": ticketRowResponse(query.Row(state, ticket))})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil && !req.Status.Valid() {
		return apperrors.NewValidationError("unknown status", fiber.Map{"status": *req.Status})
	}
	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		return apperrors.NewValidationError("estimatedCost must be non-negative", nil)
	}
	if req.ProblemDescription != nil && strings.TrimSpace(*req.ProblemDescription) == "" {
		return apperrors.NewValidationError("problemDescription cannot be empty", nil)
	}

	ticket, found, err := h.store.UpdateTicket(c.UserContext(), c.Params("id"), store.TicketPatch{
		CustomerID:         req.CustomerID,
		DeviceID:           req.DeviceID,
		ProblemDescription: req.ProblemDescription,
		Status:             req.Status,
		TechnicianID:       req.TechnicianID,
		EstimatedCost:      req.EstimatedCost,
		Notes:              req.Notes,
	})
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewNotFound("ticket", fiber.Map{"id": c.Params("id")})
	}
	state := h.store.Snapshot()
	return c.JSON(fiber.Map{"data": ticketRowResponse(query.Row(state, ticket))})
}

// Delete DELETE /tickets/:id. Deleting an already removed ticket is a
// no-op and still returns 204.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.store.RemoveTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ticketRowResponse(row query.TicketRow) dto.TicketRowResponse {
	technicianName := row.TechnicianName
	if technicianName == "" {
		technicianName = unassignedLabel
	}
	return dto.TicketRowResponse{
		ID:                 row.Ticket.ID,
		CreatedAt:          row.Ticket.CreatedAt,
		UpdatedAt:          row.Ticket.UpdatedAt,
		CustomerID:         row.Ticket.CustomerID,
		DeviceID:           row.Ticket.DeviceID,
		ProblemDescription: row.Ticket.ProblemDescription,
		Status:             row.Ticket.Status,
		TechnicianID:       row.Ticket.TechnicianID,
		EstimatedCost:      row.Ticket.EstimatedCost,
		Notes:              row.Ticket.Notes,
		CustomerName:       row.CustomerName,
		CustomerPhone:      row.CustomerPhone,
		CustomerEmail:      row.CustomerEmail,
		DeviceType:         row.DeviceType,
		DeviceBrand:        row.DeviceBrand,
		DeviceModel:        row.DeviceModel,
		DeviceSerial:       row.DeviceSerial,
		TechnicianName:     technicianName,
	}
}
