package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/api/dto"
	"github.com/fixkit/repairdesk/internal/domain"
	"github.com/fixkit/repairdesk/internal/store"
	apperrors "github.com/fixkit/repairdesk/pkg/util"
)

// DevicesHandler manages device endpoints.
type DevicesHandler struct {
	store *store.Store
}

// NewDevicesHandler constructs handler.
func NewDevicesHandler(st *store.Store) *DevicesHandler {
	return &DevicesHandler{store: st}
}

// Create POST /devices.
func (h *DevicesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Type) == "" {
		return apperrors.NewValidationError("type required", nil)
	}

	device, err := h.store.AddDevice(c.UserContext(), store.DeviceInput{
		Type:   strings.TrimSpace(req.Type),
		Brand:  strings.TrimSpace(req.Brand),
		Model:  strings.TrimSpace(req.Model),
		Serial: strings.TrimSpace(req.Serial),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": deviceResponse(device)})
}

// List GET /devices.
func (h *DevicesHandler) List(c *fiber.Ctx) error {
	state := h.store.Snapshot()
	items := make([]dto.DeviceResponse, 0, len(state.Devices))
	for _, device := range state.Devices {
		items = append(items, deviceResponse(device))
	}
	return c.JSON(fiber.Map{"data": items})
}

func deviceResponse(device domain.Device) dto.DeviceResponse {
	return dto.DeviceResponse{
		ID:     device.ID,
		Type:   device.Type,
		Brand:  device.Brand,
		Model:  device.Model,
		Serial: device.Serial,
	}
}
