package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fixkit/repairdesk/internal/domain"
	"github.com/fixkit/repairdesk/internal/events"
	"github.com/fixkit/repairdesk/internal/storage"
)

// Store is the single source of truth for the four shop collections.
// Every mutation is applied in memory under the lock and then written
// through to blob storage as one serialized record before returning.
//
// Referential integrity is deliberately not enforced: a ticket may
// reference customer, device, or technician ids that no longer exist
// (or never did), and nothing cascades. Read paths render such
// references as blank rather than rejecting them.
type Store struct {
	mu         sync.Mutex
	state      domain.State
	blob       storage.BlobStorage
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// CustomerInput describes a new customer.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
}

// TechnicianInput describes a new technician.
type TechnicianInput struct {
	Name string
}

// DeviceInput describes a new device.
type DeviceInput struct {
	Type   string
	Brand  string
	Model  string
	Serial string
}

// TicketInput describes a new ticket.
type TicketInput struct {
	CustomerID         string
	DeviceID           string
	ProblemDescription string
	Status             domain.TicketStatus
	TechnicianID       string
	EstimatedCost      *float64
	Notes              string
}

// TicketPatch carries a partial ticket update; nil fields are left
// untouched. CreatedAt is immutable and has no patch field.
type TicketPatch struct {
	CustomerID         *string
	DeviceID           *string
	ProblemDescription *string
	Status             *domain.TicketStatus
	TechnicianID       *string
	EstimatedCost      *float64
	Notes              *string
}

// New constructs a store over the given blob storage. The dispatcher
// may be nil when no subscribers are wanted (tests).
func New(blob storage.BlobStorage, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	s := &Store{
		blob:       blob,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
	s.state.Normalize()
	return s
}

// Hydrate loads the persisted blob into memory. A missing record or a
// blob that fails to parse both leave the state empty; the parse
// failure is logged but not surfaced, matching the contract that bad
// persisted data is treated as no data. Storage I/O errors are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.State{}
	s.state.Normalize()

	data, found, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !found {
		return nil
	}

	var loaded domain.State
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("persisted state is not valid JSON; starting empty", zap.Error(err))
		return nil
	}
	loaded.Normalize()
	s.state = loaded
	return nil
}

// Snapshot returns an independent copy of the current state.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddCustomer assigns a fresh id, prepends the customer, and persists.
func (s *Store) AddCustomer(ctx context.Context, input CustomerInput) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := domain.Customer{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}
	s.state.Customers = append([]domain.Customer{customer}, s.state.Customers...)
	if err := s.persist(ctx); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// AddTechnician assigns a fresh id, prepends the technician, and persists.
func (s *Store) AddTechnician(ctx context.Context, input TechnicianInput) (domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	technician := domain.Technician{
		ID:   uuid.NewString(),
		Name: input.Name,
	}
	s.state.Technicians = append([]domain.Technician{technician}, s.state.Technicians...)
	if err := s.persist(ctx); err != nil {
		return domain.Technician{}, err
	}
	return technician, nil
}

// AddDevice assigns a fresh id, prepends the device, and persists.
func (s *Store) AddDevice(ctx context.Context, input DeviceInput) (domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device := domain.Device{
		ID:     uuid.NewString(),
		Type:   input.Type,
		Brand:  input.Brand,
		Model:  input.Model,
		Serial: input.Serial,
	}
	s.state.Devices = append([]domain.Device{device}, s.state.Devices...)
	if err := s.persist(ctx); err != nil {
		return domain.Device{}, err
	}
	return device, nil
}

// AddTicket assigns a fresh id with CreatedAt == UpdatedAt, prepends the
// ticket, and persists.
func (s *Store) AddTicket(ctx context.Context, input TicketInput) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ticket := domain.Ticket{
		ID:                 uuid.NewString(),
		CreatedAt:          now,
		UpdatedAt:          now,
		CustomerID:         input.CustomerID,
		DeviceID:           input.DeviceID,
		ProblemDescription: input.ProblemDescription,
		Status:             input.Status,
		TechnicianID:       input.TechnicianID,
		EstimatedCost:      input.EstimatedCost,
		Notes:              input.Notes,
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusNew
	}
	s.state.Tickets = append([]domain.Ticket{ticket}, s.state.Tickets...)
	if err := s.persist(ctx); err != nil {
		return domain.Ticket{}, err
	}
	s.publish(ctx, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		CustomerID: ticket.CustomerID,
		DeviceID:   ticket.DeviceID,
		Status:     ticket.Status,
	})
	return ticket, nil
}

// UpdateTicket merges the patch into the matching ticket and refreshes
// UpdatedAt. An unknown id is a no-op: nothing changes, nothing is
// persisted, and found is false.
func (s *Store) UpdateTicket(ctx context.Context, id string, patch TicketPatch) (domain.Ticket, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tickets {
		if s.state.Tickets[i].ID != id {
			continue
		}
		ticket := &s.state.Tickets[i]
		oldStatus := ticket.Status
		if patch.CustomerID != nil {
			ticket.CustomerID = *patch.CustomerID
		}
		if patch.DeviceID != nil {
			ticket.DeviceID = *patch.DeviceID
		}
		if patch.ProblemDescription != nil {
			ticket.ProblemDescription = *patch.ProblemDescription
		}
		if patch.Status != nil {
			ticket.Status = *patch.Status
		}
		if patch.TechnicianID != nil {
			ticket.TechnicianID = *patch.TechnicianID
		}
		if patch.EstimatedCost != nil {
			cost := *patch.EstimatedCost
			ticket.EstimatedCost = &cost
		}
		if patch.Notes != nil {
			ticket.Notes = *patch.Notes
		}
		ticket.UpdatedAt = s.now()
		if err := s.persist(ctx); err != nil {
			return domain.Ticket{}, true, err
		}
		s.publish(ctx, events.EventTicketUpdated, ticket.ID, events.TicketUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		})
		return *ticket, true, nil
	}
	return domain.Ticket{}, false, nil
}

// RemoveTicket deletes the matching ticket and persists. Removing an
// unknown id is a no-op, so the operation is idempotent.
func (s *Store) RemoveTicket(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tickets {
		if s.state.Tickets[i].ID != id {
			continue
		}
		removed := s.state.Tickets[i]
		s.state.Tickets = append(s.state.Tickets[:i], s.state.Tickets[i+1:]...)
		if err := s.persist(ctx); err != nil {
			return true, err
		}
		s.publish(ctx, events.EventTicketRemoved, removed.ID, events.TicketRemovedPayload{
			Status: removed.Status,
		})
		return true, nil
	}
	return false, nil
}

// ImportAll parses jsonText as the four-collection shape and replaces
// the whole state on success. Missing collections default to empty.
// A parse failure returns an error and leaves the state untouched.
// Entity shapes are not validated beyond the JSON field types.
func (s *Store) ImportAll(ctx context.Context, jsonText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var imported domain.State
	if err := json.Unmarshal([]byte(jsonText), &imported); err != nil {
		return fmt.Errorf("import data is not valid JSON: %w", err)
	}
	imported.Normalize()
	s.state = imported
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.publish(ctx, events.EventDataImported, "", events.DataImportedPayload{
		Customers:   len(s.state.Customers),
		Technicians: len(s.state.Technicians),
		Devices:     len(s.state.Devices),
		Tickets:     len(s.state.Tickets),
	})
	return nil
}

// ExportAll serializes the full state as pretty-printed JSON.
func (s *Store) ExportAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Normalize()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export state: %w", err)
	}
	return data, nil
}

// persist writes the full state through to blob storage. Callers hold
// the lock. The in-memory mutation stays applied even when the write
// fails; memory remains the source of truth and the next successful
// write carries it.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.blob.Save(ctx, data); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, ticketID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
