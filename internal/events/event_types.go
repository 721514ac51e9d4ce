package events

import (
	"time"

	"github.com/fixkit/repairdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketRemoved EventType = "ticket_removed"
	EventDataImported  EventType = "data_imported"
)

// Event represents a store mutation published after it has been persisted.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CustomerID string              `json:"customer_id"`
	DeviceID   string              `json:"device_id"`
	Status     domain.TicketStatus `json:"status"`
}

// TicketUpdatedPayload payload. OldStatus equals NewStatus when the
// update touched other fields only.
type TicketUpdatedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketRemovedPayload payload.
type TicketRemovedPayload struct {
	Status domain.TicketStatus `json:"status"`
}

// DataImportedPayload payload carries the post-import collection sizes.
type DataImportedPayload struct {
	Customers   int `json:"customers"`
	Technicians int `json:"technicians"`
	Devices     int `json:"devices"`
	Tickets     int `json:"tickets"`
}
