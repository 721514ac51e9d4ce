package dto

import (
	"time"

	"github.com/fixkit/repairdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CustomerID         string              `json:"customerId"`
	DeviceID           string              `json:"deviceId"`
	ProblemDescription string              `json:"problemDescription"`
	Status             domain.TicketStatus `json:"status"`
	TechnicianID       string              `json:"technicianId"`
	EstimatedCost      *float64            `json:"estimatedCost"`
	Notes              string              `json:"notes"`
}

// UpdateTicketRequest carries a partial update; absent fields are left
// untouched.
type UpdateTicketRequest struct {
	CustomerID         *string              `json:"customerId"`
	DeviceID           *string              `json:"deviceId"`
	ProblemDescription *string              `json:"problemDescription"`
	Status             *domain.TicketStatus `json:"status"`
	TechnicianID       *string              `json:"technicianId"`
	EstimatedCost      *float64             `json:"estimatedCost"`
	Notes              *string              `json:"notes"`
}

// TicketRowResponse is a ticket joined with its referenced entities for
// list display. Technician shows "Unassigned" when no technician is
// set or the reference dangles; other joined fields stay blank.
type TicketRowResponse struct {
	ID                 string              `json:"id"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	CustomerID         string              `json:"customerId"`
	DeviceID           string              `json:"deviceId"`
	ProblemDescription string              `json:"problemDescription"`
	Status             domain.TicketStatus `json:"status"`
	TechnicianID       string              `json:"technicianId,omitempty"`
	EstimatedCost      *float64            `json:"estimatedCost,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CustomerName       string              `json:"customerName"`
	CustomerPhone      string              `json:"customerPhone,omitempty"`
	CustomerEmail      string              `json:"customerEmail,omitempty"`
	DeviceType         string              `json:"deviceType"`
	DeviceBrand        string              `json:"deviceBrand,omitempty"`
	DeviceModel        string              `json:"deviceModel,omitempty"`
	DeviceSerial       string              `json:"deviceSerial,omitempty"`
	TechnicianName     string              `json:"technicianName"`
}
