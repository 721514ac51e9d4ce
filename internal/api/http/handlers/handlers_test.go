package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/fixkit/repairdesk/internal/api/http"
	"github.com/fixkit/repairdesk/internal/api/http/handlers"
	"github.com/fixkit/repairdesk/internal/observability"
	"github.com/fixkit/repairdesk/internal/storage"
	"github.com/fixkit/repairdesk/internal/store"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	shopStore := store.New(storage.NewMemory(), nil, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler("repairdesk", "test", storage.NewMemory()),
		Customers:   handlers.NewCustomersHandler(shopStore),
		Technicians: handlers.NewTechniciansHandler(shopStore),
		Devices:     handlers.NewDevicesHandler(shopStore),
		Tickets:     handlers.NewTicketsHandler(shopStore),
		Transfer:    handlers.NewTransferHandler(shopStore),
		Metrics:     handlers.NewMetricsHandler(metrics),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %v", body)
	return data
}

func TestCreateCustomerValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/customers", map[string]any{"phone": "555-0100"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/customers", map[string]any{"name": "John Doe"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	customerID := dataField(t, body)["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/devices", map[string]any{"type": "Laptop", "brand": "Dell"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deviceID := dataField(t, body)["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/tickets", map[string]any{
		"customerId":         customerID,
		"deviceId":           deviceID,
		"problemDescription": "Won't boot",
		"status":             "New",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticket := dataField(t, body)
	require.Equal(t, "John Doe", ticket["customerName"])
	require.Equal(t, "Unassigned", ticket["technicianName"])
	require.Equal(t, ticket["createdAt"], ticket["updatedAt"])
	ticketID := ticket["id"].(string)

	resp, body = doJSON(t, app, http.MethodPatch, "/tickets/"+ticketID, map[string]any{"status": "Ready"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Ready", dataField(t, body)["status"])

	resp, body = doJSON(t, app, http.MethodGet, "/tickets?status=Ready&q=dell", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/tickets?status=Cancelled", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodDelete, "/tickets/"+ticketID, nil)
	deleteResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	// Second delete is a no-op and still succeeds.
	req = httptest.NewRequest(http.MethodDelete, "/tickets/"+ticketID, nil)
	deleteResp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)
}

func TestUpdateUnknownTicketReturnsNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPatch, "/tickets/no-such-id", map[string]any{"status": "Ready"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestCreateTicketRejectsUnknownStatus(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/tickets", map[string]any{
		"customerId":         "c1",
		"deviceId":           "d1",
		"problemDescription": "x",
		"status":             "Exploded",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTicketRejectsNegativeCost(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/tickets", map[string]any{
		"customerId":         "c1",
		"deviceId":           "d1",
		"problemDescription": "x",
		"estimatedCost":      -5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportRejectsBadJSONAndKeepsState(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/customers", map[string]any{"name": "Keeper"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader([]byte("not json")))
	importResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, importResp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/customers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestExportImportRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/customers", map[string]any{"name": "Jane"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/devices", map[string]any{"type": "Phone"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	exportResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	require.Contains(t, exportResp.Header.Get("Content-Disposition"), "repairdesk-export-")
	exported, err := io.ReadAll(exportResp.Body)
	require.NoError(t, err)

	fresh := newTestApp(t)
	req = httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(exported))
	importResp, err := fresh.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, importResp.StatusCode)

	resp, body := doJSON(t, fresh, http.MethodGet, "/customers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alive", body["status"])

	resp, body = doJSON(t, app, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ready", body["status"])
}
