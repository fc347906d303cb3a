package cmd_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"restaurant/cmd"
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/changefeed"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/jobs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type AppIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *gorm.DB
	root      *cmd.CompositionRoot
	jobs      *jobs.JobManager
	server    *httptest.Server

	tenant cmd.SeededTenant
	menu   map[string]string
}

func (s *AppIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, db, _, err := pgtest.Start(s.ctx)
	s.container = container
	s.Require().NoError(err)
	s.db = db

	config := cmd.Config{
		HTTPPort:         "8080",
		PublicBaseURL:    "https://order.example.com",
		Timezone:         "UTC",
		ChangeFeedDriver: cmd.ChangeFeedMemory,
		ChangeFeedBuffer: 64,
		RelayBatchSize:   100,
		OutboxRetention:  jobs.DefaultOutboxRetention,
		CleanupSchedule:  jobs.DefaultCleanupSchedule,
		LogLevel:         "info",
		LogFormat:        "text",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.root, err = cmd.NewCompositionRoot(config, db, logger)
	s.Require().NoError(err)

	e, err := s.root.CreateRouter(s.ctx)
	s.Require().NoError(err)
	s.server = httptest.NewServer(e)

	s.jobs = s.root.CreateJobManager()
	s.Require().NoError(s.jobs.StartAll())
}

func (s *AppIntegrationTestSuite) TearDownSuite() {
	if s.jobs != nil {
		s.jobs.StopAll()
	}
	if s.root != nil {
		s.root.Close()
	}
	if s.server != nil {
		s.server.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *AppIntegrationTestSuite) SetupTest() {
	s.Require().NoError(pgtest.Truncate(s.db))

	seed, err := cmd.LoadSeedFile(filepath.Join("testdata", "seed.yml"))
	s.Require().NoError(err)

	seeded, err := s.root.Seed(s.ctx, seed)
	s.Require().NoError(err)
	s.Require().Len(seeded, 1)
	s.tenant = seeded[0]
	s.Require().Len(s.tenant.Tables, 2)

	var menu httpadapter.Menu
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, "/api/v1/menu?table="+s.tenant.Tables[0].Token, nil, nil, &menu))
	s.menu = map[string]string{}
	for _, section := range menu.Sections {
		for _, item := range section.Items {
			s.menu[item.Name] = item.ID.String()
		}
	}
}

func (s *AppIntegrationTestSuite) call(method, path string, body any, headers map[string]string, out any) int {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if out != nil && len(payload) > 0 {
		if text, ok := out.(*string); ok {
			*text = string(payload)
		} else if resp.StatusCode < 300 {
			s.Require().NoError(json.Unmarshal(payload, out), string(payload))
		}
	}
	return resp.StatusCode
}

func (s *AppIntegrationTestSuite) orderPath(orderID string, suffix string) string {
	return "/api/v1/tenants/" + s.tenant.ID.String() + "/orders/" + orderID + suffix
}

func (s *AppIntegrationTestSuite) placeOrder() httpadapter.Order {
	var created httpadapter.Order
	code := s.call(http.MethodPost, "/api/v1/orders", map[string]any{
		"tableToken": s.tenant.Tables[0].Token,
		"customer":   map[string]string{"name": "Asha", "phone": "9999999999"},
		"items": []map[string]any{
			{"menuItemId": s.menu["Paneer Tikka"], "quantity": 2},
			{"menuItemId": s.menu["Butter Naan"], "quantity": 1},
		},
		"notes": "extra spicy",
	}, nil, &created)
	s.Require().Equal(http.StatusCreated, code)
	return created
}

func (s *AppIntegrationTestSuite) advance(orderID, status, role string) int {
	return s.call(http.MethodPost, s.orderPath(orderID, "/status"),
		map[string]string{"status": status}, map[string]string{"X-Actor-Role": role}, nil)
}

func (s *AppIntegrationTestSuite) Test_SeededMenuHidesUnavailableItems() {
	s.Contains(s.menu, "Paneer Tikka")
	s.Contains(s.menu, "Masala Chai")
	s.NotContains(s.menu, "Kulfi")
	s.True(strings.HasPrefix(s.tenant.Tables[0].MenuURL, "https://order.example.com/menu?table="))
}

func (s *AppIntegrationTestSuite) Test_OrderLifecycle() {
	created := s.placeOrder()
	orderID := created.ID.String()

	s.Equal("pending", created.Status)
	s.Equal(int64(2*249+60), created.Total)
	s.Equal(1, created.TableNumber)
	s.Len(created.Number, 8)
	s.Len(created.Items, 2)

	s.Equal(http.StatusConflict, s.advance(orderID, "preparing", "kitchen"), "skipping confirmation")
	s.Equal(http.StatusConflict, s.advance(orderID, "confirmed", "kitchen"), "kitchen cannot confirm")
	s.Equal(http.StatusOK, s.advance(orderID, "confirmed", "waiter"))
	s.Equal(http.StatusConflict, s.advance(orderID, "confirmed", "waiter"), "repeated transition")

	var ticket string
	s.Equal(http.StatusOK, s.call(http.MethodGet, s.orderPath(orderID, "/kot"), nil, nil, &ticket))
	s.Contains(ticket, "Table: 1")
	s.Contains(ticket, "** STARTERS **")
	s.Contains(ticket, "2x Paneer Tikka")
	s.Contains(ticket, "extra spicy")

	var kitchen []httpadapter.Order
	s.Equal(http.StatusOK, s.call(http.MethodGet, "/api/v1/tenants/"+s.tenant.ID.String()+"/orders?board=kitchen", nil, nil, &kitchen))
	s.Require().Len(kitchen, 1)
	s.Equal(orderID, kitchen[0].ID.String())

	for _, step := range []struct{ status, role string }{
		{"preparing", "kitchen"},
		{"ready", "kitchen"},
		{"served", "waiter"},
		{"paid", "waiter"},
	} {
		s.Equal(http.StatusOK, s.advance(orderID, step.status, step.role), step.status)
	}

	var final httpadapter.Order
	s.Equal(http.StatusOK, s.call(http.MethodGet, s.orderPath(orderID, ""), nil, nil, &final))
	s.Equal("paid", final.Status)
	s.Equal(created.Total, final.Total)

	var waiter []httpadapter.Order
	s.Equal(http.StatusOK, s.call(http.MethodGet, "/api/v1/tenants/"+s.tenant.ID.String()+"/orders?board=waiter", nil, nil, &waiter))
	for _, o := range waiter {
		s.NotEqual(orderID, o.ID.String(), "paid orders leave the waiter board")
	}

	now := time.Now().UTC()
	var sales []httpadapter.DailySales
	query := url.Values{
		"from": {now.Add(-24 * time.Hour).Format(time.RFC3339)},
		"to":   {now.Add(24 * time.Hour).Format(time.RFC3339)},
	}
	s.Equal(http.StatusOK, s.call(http.MethodGet, "/api/v1/tenants/"+s.tenant.ID.String()+"/sales/daily?"+query.Encode(), nil, nil, &sales))
	var revenue, orders int64
	for _, day := range sales {
		revenue += day.Revenue
		orders += day.Orders
	}
	s.GreaterOrEqual(orders, int64(1))
	s.GreaterOrEqual(revenue, created.Total)
}

func (s *AppIntegrationTestSuite) Test_UnknownResources() {
	s.Equal(http.StatusNotFound, s.call(http.MethodGet, "/api/v1/menu?table=00000000000000000000000000000000", nil, nil, nil))
	s.Equal(http.StatusNotFound, s.call(http.MethodGet, s.orderPath("00000000-0000-4000-8000-000000000001", ""), nil, nil, nil))
	s.Equal(http.StatusNotFound, s.advance("00000000-0000-4000-8000-000000000001", "confirmed", "waiter"))
}

func (s *AppIntegrationTestSuite) Test_AdminEndpoints() {
	var tenant httpadapter.Created
	s.Require().Equal(http.StatusCreated, s.call(http.MethodPost, "/api/v1/tenants",
		map[string]string{"name": "Dosa Corner", "domain": "dosa.example.com"}, nil, &tenant))
	base := "/api/v1/tenants/" + tenant.ID.String()

	var table httpadapter.Created
	s.Require().Equal(http.StatusCreated, s.call(http.MethodPost, base+"/tables", map[string]int{"number": 3}, nil, &table))
	s.True(strings.HasPrefix(table.MenuURL, "https://order.example.com/menu?table="), table.MenuURL)

	s.Equal(http.StatusBadRequest, s.call(http.MethodPost, base+"/tables", map[string]int{"number": 3}, nil, nil),
		"table numbers are unique per tenant")

	var item httpadapter.Created
	s.Require().Equal(http.StatusCreated, s.call(http.MethodPost, base+"/menu-items",
		map[string]any{"name": "Masala Dosa", "price": 180, "category": "Mains"}, nil, &item))
	s.Equal(http.StatusNoContent, s.call(http.MethodPatch, base+"/menu-items/"+item.ID.String(),
		map[string]bool{"available": false}, nil, nil))
	s.Equal(http.StatusNoContent, s.call(http.MethodPost, base+"/devices",
		map[string]string{"role": "kitchen", "pushToken": "tablet-2"}, nil, nil))

	var tables []httpadapter.Table
	s.Equal(http.StatusOK, s.call(http.MethodGet, base+"/tables?baseUrl="+url.QueryEscape("https://qr.example.com"), nil, nil, &tables))
	s.Require().Len(tables, 1)
	s.Equal(3, tables[0].Number)
	s.True(strings.HasPrefix(tables[0].MenuURL, "https://qr.example.com/menu?table="))

	var menu httpadapter.Menu
	token := strings.TrimPrefix(table.MenuURL, "https://order.example.com/menu?table=")
	s.Equal(http.StatusOK, s.call(http.MethodGet, "/api/v1/menu?table="+token, nil, nil, &menu))
	s.Empty(menu.Sections, "the only item was made unavailable")
}

func (s *AppIntegrationTestSuite) Test_InventoryAlerts() {
	base := "/api/v1/tenants/" + s.tenant.ID.String() + "/inventory"

	var flour, milk httpadapter.Created
	s.Require().Equal(http.StatusCreated, s.call(http.MethodPost, base,
		map[string]any{"name": "Flour", "unit": "kg", "quantity": 25, "minThreshold": 5}, nil, &flour))
	s.Require().Equal(http.StatusCreated, s.call(http.MethodPost, base,
		map[string]any{"name": "Milk", "unit": "l", "quantity": 2, "minThreshold": 4}, nil, &milk))
	s.Equal(http.StatusBadRequest, s.call(http.MethodPost, base,
		map[string]any{"name": "Flour", "quantity": 1, "minThreshold": 0}, nil, nil), "names are unique per tenant")

	var alerts []httpadapter.InventoryItem
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, base+"/alerts", nil, nil, &alerts))
	s.Require().Len(alerts, 1)
	s.Equal("Milk", alerts[0].Name)

	s.Equal(http.StatusNoContent, s.call(http.MethodPatch, base+"/"+flour.ID.String(), map[string]float64{"quantity": 4.5}, nil, nil))
	s.Equal(http.StatusNoContent, s.call(http.MethodPatch, base+"/"+milk.ID.String(), map[string]float64{"quantity": 12}, nil, nil))
	s.Equal(http.StatusNotFound, s.call(http.MethodPatch, base+"/00000000-0000-4000-8000-000000000001",
		map[string]float64{"quantity": 1}, nil, nil))

	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, base+"/alerts", nil, nil, &alerts))
	s.Require().Len(alerts, 1)
	s.Equal("Flour", alerts[0].Name)
	s.True(alerts[0].Low)

	var stock []httpadapter.InventoryItem
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, base, nil, nil, &stock))
	s.Require().Len(stock, 2)
	s.Equal("l", stock[1].Unit)
	s.InDelta(12.0, stock[1].Quantity, 1e-9)
}

func (s *AppIntegrationTestSuite) Test_KitchenBoardStream() {
	ctx, cancel := context.WithTimeout(s.ctx, 15*time.Second)
	defer cancel()

	created := s.placeOrder()
	orderID := created.ID.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.server.URL+"/api/v1/tenants/"+s.tenant.ID.String()+"/events?board=kitchen", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	name, data := readSSE(s.T(), reader)
	s.Equal("snapshot", name)
	s.JSONEq("[]", data, "pending orders are not on the kitchen board")

	s.Require().Equal(http.StatusOK, s.advance(orderID, "confirmed", "waiter"))

	name, data = readSSE(s.T(), reader)
	s.Equal("change", name)
	var msg changefeed.Message
	s.Require().NoError(json.Unmarshal([]byte(data), &msg))
	s.Equal(orderID, msg.OrderID)
	s.Equal("confirmed", msg.NewStatus)
	s.Equal("waiter", msg.Actor)
	s.Equal(created.Number, msg.OrderNumber)
}

func readSSE(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("stream ended: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "" && name != "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestAppIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AppIntegrationTestSuite))
}
