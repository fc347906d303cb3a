package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/changefeed"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/inventory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newRouter wires a server without use case handlers: every request in these tests
// is answered before a handler would touch storage.
func newRouter(t *testing.T, hub *changefeed.Hub) *echo.Echo {
	t.Helper()
	server := httpadapter.NewServer(httpadapter.Handlers{}, hub, "https://spice.example.com", discard)
	e, err := httpadapter.NewRouter(context.Background(), server, discard)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRouter_Health(t *testing.T) {
	rec := do(newRouter(t, changefeed.NewHub(1)), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestRouter_ServesOpenAPIDocument(t *testing.T) {
	e := newRouter(t, changefeed.NewHub(1))

	rec := do(e, http.MethodGet, "/openapi.yml", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = do(e, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders")
}

func TestRouter_RejectsRequestsOutsideTheContract(t *testing.T) {
	e := newRouter(t, changefeed.NewHub(1))
	tenantID := kernel.NewUUID().String()
	orderID := kernel.NewUUID().String()

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		headers map[string]string
	}{
		{"menu_without_table", http.MethodGet, "/api/v1/menu", "", nil},
		{"menu_with_short_token", http.MethodGet, "/api/v1/menu?table=abc", "", nil},
		{"order_without_items", http.MethodPost, "/api/v1/orders",
			`{"tableToken":"0123456789abcdef","customer":{"phone":"9999999999"},"items":[]}`, nil},
		{"order_with_zero_quantity", http.MethodPost, "/api/v1/orders",
			`{"tableToken":"0123456789abcdef","customer":{"phone":"9999999999"},"items":[{"menuItemId":"` + orderID + `","quantity":0}]}`, nil},
		{"order_with_huge_quantity", http.MethodPost, "/api/v1/orders",
			`{"tableToken":"0123456789abcdef","customer":{"phone":"9999999999"},"items":[{"menuItemId":"` + orderID + `","quantity":100000000000000000}]}`, nil},
		{"order_with_long_notes", http.MethodPost, "/api/v1/orders",
			`{"tableToken":"0123456789abcdef","customer":{"phone":"9999999999"},"items":[{"menuItemId":"` + orderID + `","quantity":1}],"notes":"` +
				strings.Repeat("x", commands.MaxNotesLength+1) + `"}`, nil},
		{"advance_without_role", http.MethodPost, "/api/v1/tenants/" + tenantID + "/orders/" + orderID + "/status",
			`{"status":"confirmed"}`, nil},
		{"advance_with_unknown_role", http.MethodPost, "/api/v1/tenants/" + tenantID + "/orders/" + orderID + "/status",
			`{"status":"confirmed"}`, map[string]string{"X-Actor-Role": "chef"}},
		{"advance_to_unknown_status", http.MethodPost, "/api/v1/tenants/" + tenantID + "/orders/" + orderID + "/status",
			`{"status":"cooking"}`, map[string]string{"X-Actor-Role": "kitchen"}},
		{"orders_with_unknown_board", http.MethodGet, "/api/v1/tenants/" + tenantID + "/orders?board=bar", "", nil},
		{"tenant_id_not_uuid", http.MethodGet, "/api/v1/tenants/spice/orders/" + orderID, "", nil},
		{"sales_without_range", http.MethodGet, "/api/v1/tenants/" + tenantID + "/sales/daily", "", nil},
		{"negative_price", http.MethodPost, "/api/v1/tenants/" + tenantID + "/menu-items", `{"name":"Soup","price":-1}`, nil},
		{"stock_with_unknown_unit", http.MethodPost, "/api/v1/tenants/" + tenantID + "/inventory",
			`{"name":"Flour","unit":"sack","quantity":1,"minThreshold":0}`, nil},
		{"negative_stock", http.MethodPatch, "/api/v1/tenants/" + tenantID + "/inventory/" + orderID, `{"quantity":-2}`, nil},
		{"customer_device", http.MethodPost, "/api/v1/tenants/" + tenantID + "/devices", `{"role":"customer","pushToken":"t"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body, tt.headers)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestOpenAPI_OrderLimitsMatchCommand(t *testing.T) {
	doc, err := httpadapter.LoadOpenAPI(context.Background())
	require.NoError(t, err)

	request := doc.Components.Schemas["PlaceOrderRequest"].Value
	notes := request.Properties["notes"].Value
	require.NotNil(t, notes.MaxLength)
	assert.Equal(t, uint64(commands.MaxNotesLength), *notes.MaxLength)

	quantity := request.Properties["items"].Value.Items.Value.Properties["quantity"].Value
	require.NotNil(t, quantity.Max)
	assert.Equal(t, float64(kernel.MaxQuantity), *quantity.Max)
}

func TestOpenAPI_StockLimitsMatchDomain(t *testing.T) {
	doc, err := httpadapter.LoadOpenAPI(context.Background())
	require.NoError(t, err)

	amount := doc.Components.Schemas["StockAmount"].Value
	require.NotNil(t, amount.Max)
	assert.Equal(t, float64(inventory.MaxQuantity), *amount.Max)
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := do(newRouter(t, changefeed.NewHub(1)), http.MethodGet, "/api/v1/nowhere", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}

type sseEvent struct {
	id   string
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) (sseEvent, bool) {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return ev, false
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev, true
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "id: "):
			ev.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestStreamEvents_OrderTracking(t *testing.T) {
	hub := changefeed.NewHub(16)
	srv := httptest.NewServer(newRouter(t, hub))
	defer srv.Close()

	tenantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	at := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	event := func(id kernel.UUID, kind order.EventKind, to order.Status) order.ChangeEvent {
		at = at.Add(time.Minute)
		role, ok := order.AuthorizedRole(to)
		if !ok {
			role = kernel.RoleCustomer
		}
		return order.ChangeEvent{
			ID: kernel.NewUUID(), Kind: kind, OrderID: id, TenantID: tenantID, TableID: kernel.NewUUID(),
			TableNumber: 4, OldStatus: to - 1, NewStatus: to, Actor: role, OccurredAt: at,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/tenants/"+tenantID.String()+"/events?orderId="+orderID.String(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	require.Eventually(t, func() bool { return hub.Subscribers(tenantID) == 1 }, 5*time.Second, 10*time.Millisecond)

	placed := event(orderID, order.EventPlaced, order.Pending)
	placed.OldStatus = order.Unknown
	confirmed := event(orderID, order.EventStatusChanged, order.Confirmed)
	for _, e := range []order.ChangeEvent{
		placed,
		placed,
		event(kernel.NewUUID(), order.EventPlaced, order.Pending),
		confirmed,
		placed,
	} {
		require.NoError(t, hub.Publish(ctx, e))
	}

	reader := bufio.NewReader(resp.Body)

	first, ok := readEvent(t, reader)
	require.True(t, ok)
	assert.Equal(t, "change", first.name)
	assert.Equal(t, placed.ID.String(), first.id)

	second, ok := readEvent(t, reader)
	require.True(t, ok)
	assert.Equal(t, confirmed.ID.String(), second.id)
	var msg changefeed.Message
	require.NoError(t, json.Unmarshal([]byte(second.data), &msg))
	assert.Equal(t, "confirmed", msg.NewStatus)
	assert.Equal(t, "pending", msg.OldStatus)
	assert.Equal(t, orderID.String(), msg.OrderID)

	hub.Close()

	reset, ok := readEvent(t, reader)
	require.True(t, ok, "duplicates and other orders were filtered, the next event is the reset")
	assert.Equal(t, "reset", reset.name)

	_, ok = readEvent(t, reader)
	assert.False(t, ok, "the stream ends after a reset")
}

func TestStreamEvents_ClosedFeedIsUnavailable(t *testing.T) {
	hub := changefeed.NewHub(1)
	hub.Close()

	rec := do(newRouter(t, hub), http.MethodGet, "/api/v1/tenants/"+kernel.NewUUID().String()+"/events", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
