package domain

import "time"

// TicketStatus enumerates repair lifecycle states.
type TicketStatus string

const (
	TicketStatusNew           TicketStatus = "New"
	TicketStatusDiagnosing    TicketStatus = "Diagnosing"
	TicketStatusAwaitingParts TicketStatus = "Awaiting Parts"
	TicketStatusInProgress    TicketStatus = "In Progress"
	TicketStatusReady         TicketStatus = "Ready"
	TicketStatusPickedUp      TicketStatus = "Picked Up"
	TicketStatusCancelled     TicketStatus = "Cancelled"
)

// TicketStatuses returns all statuses in canonical display order.
// Cancelled is terminal but reachable from any status; no transition
// graph is enforced anywhere.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusNew,
		TicketStatusDiagnosing,
		TicketStatusAwaitingParts,
		TicketStatusInProgress,
		TicketStatusReady,
		TicketStatusPickedUp,
		TicketStatusCancelled,
	}
}

// Valid reports whether s is a member of the status enumeration.
func (s TicketStatus) Valid() bool {
	for _, known := range TicketStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Ticket is the repair job aggregate. CustomerID and DeviceID reference
// entities in the same state blob; referential integrity is not enforced
// and dangling references are tolerated.
type Ticket struct {
	ID                 string       `json:"id"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
	CustomerID         string       `json:"customerId"`
	DeviceID           string       `json:"deviceId"`
	ProblemDescription string       `json:"problemDescription"`
	Status             TicketStatus `json:"status"`
	TechnicianID       string       `json:"technicianId,omitempty"`
	EstimatedCost      *float64     `json:"estimatedCost,omitempty"`
	Notes              string       `json:"notes,omitempty"`
}
