package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fixkit/repairdesk/internal/domain"
	"github.com/fixkit/repairdesk/internal/query"
	"github.com/fixkit/repairdesk/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	st := New(mem, nil, zap.NewNop())
	return st, mem
}

// stepClock makes every call to now() strictly later than the previous one.
func stepClock(st *Store) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	st.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
}

func TestAddCustomerPrependsAndPersists(t *testing.T) {
	st, mem := newTestStore(t)
	ctx := context.Background()

	first, err := st.AddCustomer(ctx, CustomerInput{Name: "Alice"})
	require.NoError(t, err)
	second, err := st.AddCustomer(ctx, CustomerInput{Name: "Bob", Phone: "555-0101"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	state := st.Snapshot()
	require.Len(t, state.Customers, 2)
	require.Equal(t, "Bob", state.Customers[0].Name)
	require.Equal(t, "Alice", state.Customers[1].Name)

	_, found, err := mem.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
}

func TestAddTicketSetsTimestampsAndDefaultStatus(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         "c1",
		DeviceID:           "d1",
		ProblemDescription: "Screen cracked",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticket.ID)
	require.Equal(t, domain.TicketStatusNew, ticket.Status)
	require.True(t, ticket.CreatedAt.Equal(ticket.UpdatedAt))

	state := st.Snapshot()
	require.Len(t, state.Tickets, 1)
	require.Equal(t, ticket.ID, state.Tickets[0].ID)
}

func TestUpdateTicketMergesAndAdvancesUpdatedAt(t *testing.T) {
	st, _ := newTestStore(t)
	stepClock(st)
	ctx := context.Background()

	cost := 120.50
	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         "c1",
		DeviceID:           "d1",
		ProblemDescription: "Won't boot",
		Status:             domain.TicketStatusDiagnosing,
		EstimatedCost:      &cost,
		Notes:              "left charger at home",
	})
	require.NoError(t, err)

	status := domain.TicketStatusReady
	updated, found, err := st.UpdateTicket(ctx, ticket.ID, TicketPatch{Status: &status})
	require.NoError(t, err)
	require.True(t, found)

	require.Equal(t, domain.TicketStatusReady, updated.Status)
	require.Equal(t, ticket.CustomerID, updated.CustomerID)
	require.Equal(t, ticket.DeviceID, updated.DeviceID)
	require.Equal(t, ticket.ProblemDescription, updated.ProblemDescription)
	require.Equal(t, ticket.Notes, updated.Notes)
	require.Equal(t, *ticket.EstimatedCost, *updated.EstimatedCost)
	require.True(t, updated.CreatedAt.Equal(ticket.CreatedAt), "CreatedAt is immutable")
	require.True(t, updated.UpdatedAt.After(ticket.UpdatedAt), "UpdatedAt must strictly advance")
}

func TestUpdateTicketUnknownIDIsNoOp(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         "c1",
		DeviceID:           "d1",
		ProblemDescription: "No sound",
	})
	require.NoError(t, err)

	before, err := st.ExportAll()
	require.NoError(t, err)

	status := domain.TicketStatusCancelled
	_, found, err := st.UpdateTicket(ctx, "no-such-id", TicketPatch{Status: &status})
	require.NoError(t, err)
	require.False(t, found)

	after, err := st.ExportAll()
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))

	state := st.Snapshot()
	require.Len(t, state.Tickets, 1)
	require.Equal(t, ticket.Status, state.Tickets[0].Status)
}

func TestRemoveTicketIsIdempotent(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         "c1",
		DeviceID:           "d1",
		ProblemDescription: "Overheating",
	})
	require.NoError(t, err)

	removed, err := st.RemoveTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.Empty(t, st.Snapshot().Tickets)

	removed, err = st.RemoveTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.False(t, removed)
	require.Empty(t, st.Snapshot().Tickets)
}

func TestImportExportRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	customer, err := st.AddCustomer(ctx, CustomerInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	device, err := st.AddDevice(ctx, DeviceInput{Type: "Laptop", Brand: "Dell", Model: "XPS 13"})
	require.NoError(t, err)
	_, err = st.AddTechnician(ctx, TechnicianInput{Name: "Sam"})
	require.NoError(t, err)
	_, err = st.AddTicket(ctx, TicketInput{
		CustomerID:         customer.ID,
		DeviceID:           device.ID,
		ProblemDescription: "Keyboard dead",
		Status:             domain.TicketStatusInProgress,
	})
	require.NoError(t, err)

	exported, err := st.ExportAll()
	require.NoError(t, err)

	other, _ := newTestStore(t)
	require.NoError(t, other.ImportAll(ctx, string(exported)))

	reExported, err := other.ExportAll()
	require.NoError(t, err)
	require.JSONEq(t, string(exported), string(reExported))
}

func TestImportInvalidJSONLeavesStateUntouched(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	_, err := st.AddCustomer(ctx, CustomerInput{Name: "Keeper"})
	require.NoError(t, err)
	before, err := st.ExportAll()
	require.NoError(t, err)

	err = st.ImportAll(ctx, "not json")
	require.Error(t, err)

	after, err := st.ExportAll()
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))
}

func TestImportDefaultsMissingCollections(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ImportAll(ctx, `{"customers": [{"id": "c1", "name": "Only Customer"}]}`))

	state := st.Snapshot()
	require.Len(t, state.Customers, 1)
	require.NotNil(t, state.Technicians)
	require.Empty(t, state.Technicians)
	require.NotNil(t, state.Devices)
	require.Empty(t, state.Devices)
	require.NotNil(t, state.Tickets)
	require.Empty(t, state.Tickets)
}

func TestImportReplacesWholesale(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	_, err := st.AddCustomer(ctx, CustomerInput{Name: "Old Customer"})
	require.NoError(t, err)
	_, err = st.AddTicket(ctx, TicketInput{CustomerID: "x", DeviceID: "y", ProblemDescription: "old"})
	require.NoError(t, err)

	require.NoError(t, st.ImportAll(ctx, `{"customers": [{"id": "n1", "name": "New Customer"}]}`))

	state := st.Snapshot()
	require.Len(t, state.Customers, 1)
	require.Equal(t, "New Customer", state.Customers[0].Name)
	require.Empty(t, state.Tickets, "import does not merge with existing data")
}

func TestHydrateTreatsCorruptBlobAsEmpty(t *testing.T) {
	mem := storage.NewMemory()
	mem.Seed([]byte("{{{ definitely not json"))
	st := New(mem, nil, zap.NewNop())

	require.NoError(t, st.Hydrate(context.Background()))

	state := st.Snapshot()
	require.Empty(t, state.Customers)
	require.Empty(t, state.Technicians)
	require.Empty(t, state.Devices)
	require.Empty(t, state.Tickets)
}

func TestHydrateDefaultsMissingCollections(t *testing.T) {
	mem := storage.NewMemory()
	mem.Seed([]byte(`{"tickets": [{"id": "t1", "customerId": "c1", "deviceId": "d1", "problemDescription": "hinge", "status": "New"}]}`))
	st := New(mem, nil, zap.NewNop())

	require.NoError(t, st.Hydrate(context.Background()))

	state := st.Snapshot()
	require.Len(t, state.Tickets, 1)
	require.NotNil(t, state.Customers)
	require.Empty(t, state.Customers)
}

func TestNewShopScenario(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	customer, err := st.AddCustomer(ctx, CustomerInput{Name: "John Doe"})
	require.NoError(t, err)
	device, err := st.AddDevice(ctx, DeviceInput{Type: "Laptop"})
	require.NoError(t, err)
	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         customer.ID,
		DeviceID:           device.ID,
		ProblemDescription: "Won't boot",
		Status:             domain.TicketStatusNew,
	})
	require.NoError(t, err)

	state := st.Snapshot()
	require.Len(t, state.Tickets, 1)
	require.True(t, ticket.CreatedAt.Equal(ticket.UpdatedAt))

	row := query.Row(state, state.Tickets[0])
	require.Equal(t, "John Doe", row.CustomerName)
	require.Equal(t, "Laptop", row.DeviceType)
}

func TestOrphanedReferencesSurviveEntityRemovalSemantics(t *testing.T) {
	// Customers, technicians, and devices have no delete operation, but
	// a ticket may reference ids that were never created (e.g. after a
	// partial import). The store keeps such tickets as-is.
	st, _ := newTestStore(t)
	ctx := context.Background()

	ticket, err := st.AddTicket(ctx, TicketInput{
		CustomerID:         "ghost-customer",
		DeviceID:           "ghost-device",
		ProblemDescription: "Mystery machine",
		TechnicianID:       "ghost-tech",
	})
	require.NoError(t, err)

	state := st.Snapshot()
	row := query.Row(state, state.Tickets[0])
	require.Equal(t, ticket.ID, row.Ticket.ID)
	require.Empty(t, row.CustomerName)
	require.Empty(t, row.DeviceType)
	require.Empty(t, row.TechnicianName)
}
