package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-scheduler/internal/adapter/inmemory"
	"coffee-scheduler/internal/app"
	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
)

var apiEpoch = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *inmemory.CustomerRegistry) {
	t.Helper()

	queue := inmemory.NewOrderQueue()
	roster := inmemory.NewRoster(2)
	customers := inmemory.NewCustomerRegistry(nil)

	model := app.NewPriorityModel(config.DefaultPriority())
	scheduler := app.NewScheduler(queue, roster, customers, domain.DefaultDrinkCatalog(), model, func() time.Time {
		return apiEpoch
	})

	simCfg := config.DefaultSimulation()
	simCfg.TestCases = 1
	simCfg.MinOrders = 10
	simCfg.MaxOrders = 10
	simCfg.ArrivalWindow = 10 * time.Minute
	harness := app.NewSimulationHarness(simCfg, config.DefaultPriority(), domain.DefaultDrinkCatalog())

	handlers := NewHandlers(scheduler, customers, harness)
	srv := httptest.NewServer(NewRouter(handlers, nil))
	t.Cleanup(srv.Close)
	return srv, customers
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func Test_API_PlaceAndListOrders(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", map[string]any{
		"customerName": "Ann",
		"drinkType":    "Latte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	placed := decodeBody[orderDTO](t, resp)
	assert.Equal(t, int64(1), placed.ID)
	assert.Equal(t, "PENDING", placed.Status)
	assert.Equal(t, 4, placed.PrepTimeMinutes)
	assert.Equal(t, 200.0, placed.Price)
	assert.False(t, placed.IsLoyaltyMember)

	listResp, err := http.Get(srv.URL + "/orders")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	orders := decodeBody[[]orderDTO](t, listResp)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ann", orders[0].CustomerName)
}

func Test_API_PlaceOrder_LoyaltyFromCustomer(t *testing.T) {
	t.Parallel()

	srv, customers := newTestServer(t)
	member, err := customers.Create("Bob", "bob@example.com", true)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/orders", map[string]any{
		"drinkType": "Espresso",
		"customer":  map[string]any{"id": member.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	placed := decodeBody[orderDTO](t, resp)
	assert.Equal(t, "Bob", placed.CustomerName)
	assert.True(t, placed.IsLoyaltyMember)
}

func Test_API_PlaceOrder_Errors(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown drink",
			body:       map[string]any{"customerName": "Cal", "drinkType": "Matcha"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "missing customer name",
			body:       map[string]any{"drinkType": "Latte"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "unknown customer id",
			body:       map[string]any{"drinkType": "Latte", "customerId": 999},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := postJSON(t, srv.URL+"/orders", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeBody[errorResponse](t, resp)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func Test_API_CancelOrder(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", map[string]any{
		"customerName": "Dee",
		"drinkType":    "Espresso",
	})
	placed := decodeBody[orderDTO](t, resp)

	cancelResp := postJSON(t, fmt.Sprintf("%s/orders/%d/cancel", srv.URL, placed.ID), nil)
	require.Equal(t, http.StatusOK, cancelResp.StatusCode)
	cancelled := decodeBody[orderDTO](t, cancelResp)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	// cancelling twice trips the state check
	again := postJSON(t, fmt.Sprintf("%s/orders/%d/cancel", srv.URL, placed.ID), nil)
	assert.Equal(t, http.StatusConflict, again.StatusCode)
	body := decodeBody[errorResponse](t, again)
	assert.Equal(t, "INVALID_STATE", body.Code)

	missing := postJSON(t, srv.URL+"/orders/424242/cancel", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	garbled := postJSON(t, srv.URL+"/orders/not-a-number/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, garbled.StatusCode)
}

func Test_API_ListBaristas(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/baristas")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	baristas := decodeBody[[]baristaDTO](t, resp)
	require.Len(t, baristas, 2)
	assert.Equal(t, "Barista 1", baristas[0].Name)
	assert.Equal(t, "IDLE", baristas[0].Status)
	assert.Nil(t, baristas[0].BusyUntil)
}

func Test_API_Customers(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/customers", map[string]any{
		"name":            "Eli",
		"email":           "Eli@Example.com",
		"isLoyaltyMember": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[customerDTO](t, resp)
	assert.True(t, created.IsLoyaltyMember)

	searchResp, err := http.Get(srv.URL + "/customers/search?email=eli@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, searchResp.StatusCode)
	found := decodeBody[customerDTO](t, searchResp)
	assert.Equal(t, created.ID, found.ID)

	dup := postJSON(t, srv.URL+"/customers", map[string]any{
		"name":  "Eli Again",
		"email": "eli@example.com",
	})
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	noEmail, err := http.Get(srv.URL + "/customers/search")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, noEmail.StatusCode)
}

func Test_API_RunSimulation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/simulation/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reports := decodeBody[[]app.SimulationReport](t, resp)
	require.Len(t, reports, 1)
	assert.Equal(t, 10, reports[0].TotalOrders)
}
