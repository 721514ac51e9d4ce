package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/store"
	apperrors "github.com/fixkit/repairdesk/pkg/util"
)

// TransferHandler serves whole-state export and import.
type TransferHandler struct {
	store *store.Store
}

// NewTransferHandler constructs handler.
func NewTransferHandler(st *store.Store) *TransferHandler {
	return &TransferHandler{store: st}
}

// Export GET /export. Returns the full state as a pretty-printed JSON
// download named with a timestamp.
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	data, err := h.store.ExportAll()
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("repairdesk-export-%s.json", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// Import POST /import. The body is the raw JSON text of a previous
// export. Adoption is all-or-nothing: a parse failure changes nothing.
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return apperrors.NewValidationError("request body required", nil)
	}
	if err := h.store.ImportAll(c.UserContext(), string(body)); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"imported": true}})
}
