// Package query derives display rows from a state snapshot. It holds no
// state of its own: every call re-joins and re-filters from scratch,
// mirroring how the ticket list is rebuilt on each render.
package query

import (
	"strings"

	"github.com/fixkit/repairdesk/internal/domain"
)

// StatusAll matches every ticket status.
const StatusAll = "all"

// TicketFilter narrows the ticket listing. Status is an exact status
// value, empty, or StatusAll; Search is a case-insensitive substring
// matched against the joined row text.
type TicketFilter struct {
	Status string
	Search string
}

// TicketRow is a ticket joined with its referenced entities for
// display. Reference fields stay zero-valued when the referenced id is
// missing from the state; dangling references are expected and render
// blank rather than failing.
type TicketRow struct {
	Ticket         domain.Ticket
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	DeviceType     string
	DeviceBrand    string
	DeviceModel    string
	DeviceSerial   string
	TechnicianName string
}

// Tickets returns the joined rows for every ticket passing the filter,
// preserving the state's ticket order (newest first).
func Tickets(state domain.State, filter TicketFilter) []TicketRow {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	rows := make([]TicketRow, 0, len(state.Tickets))

	for _, ticket := range state.Tickets {
		if !statusMatches(ticket.Status, filter.Status) {
			continue
		}
		row := join(state, ticket)
		if term != "" && !strings.Contains(haystack(row), term) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Row joins a single ticket against the state.
func Row(state domain.State, ticket domain.Ticket) TicketRow {
	return join(state, ticket)
}

func statusMatches(status domain.TicketStatus, filter string) bool {
	if filter == "" || filter == StatusAll {
		return true
	}
	return string(status) == filter
}

func join(state domain.State, ticket domain.Ticket) TicketRow {
	row := TicketRow{Ticket: ticket}
	if customer, ok := state.FindCustomer(ticket.CustomerID); ok {
		row.CustomerName = customer.Name
		row.CustomerPhone = customer.Phone
		row.CustomerEmail = customer.Email
	}
	if device, ok := state.FindDevice(ticket.DeviceID); ok {
		row.DeviceType = device.Type
		row.DeviceBrand = device.Brand
		row.DeviceModel = device.Model
		row.DeviceSerial = device.Serial
	}
	if technician, ok := state.FindTechnician(ticket.TechnicianID); ok {
		row.TechnicianName = technician.Name
	}
	return row
}

// haystack concatenates the searchable row text. Absent references
// contribute nothing.
func haystack(row TicketRow) string {
	parts := []string{
		row.Ticket.ProblemDescription,
		row.CustomerName,
		row.CustomerPhone,
		row.CustomerEmail,
		row.DeviceBrand,
		row.DeviceModel,
		row.DeviceSerial,
		row.TechnicianName,
	}
	return strings.ToLower(strings.Join(parts, " "))
}
