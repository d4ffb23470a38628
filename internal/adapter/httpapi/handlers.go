package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"coffee-scheduler/internal/app"
	"coffee-scheduler/internal/domain"
)

type Handlers struct {
	scheduler *app.Scheduler
	customers app.CustomerDirectory
	harness   *app.SimulationHarness
}

func NewHandlers(scheduler *app.Scheduler, customers app.CustomerDirectory, harness *app.SimulationHarness) *Handlers {
	return &Handlers{
		scheduler: scheduler,
		customers: customers,
		harness:   harness,
	}
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, now := h.scheduler.ListOrders(r.Context())
	dtos := make([]orderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, mapOrder(order, now))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ValidationFailedError("malformed request body"))
		return
	}

	customerID := req.CustomerID
	if customerID == nil && req.Customer != nil {
		customerID = &req.Customer.ID
	}

	order, err := h.scheduler.PlaceOrder(r.Context(), app.PlaceOrderRequest{
		CustomerName: req.CustomerName,
		DrinkType:    req.DrinkType,
		CustomerID:   customerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order, h.scheduler.Now()))
}

func (h *Handlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, domain.ValidationFailedError("order id must be an integer"))
		return
	}

	order, err := h.scheduler.CancelOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(order, h.scheduler.Now()))
}

func (h *Handlers) listBaristas(w http.ResponseWriter, r *http.Request) {
	baristas, now := h.scheduler.ListBaristas(r.Context())
	dtos := make([]baristaDTO, 0, len(baristas))
	for _, barista := range baristas {
		dtos = append(dtos, mapBarista(barista, now))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handlers) searchCustomer(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, domain.ValidationFailedError("email query parameter is required"))
		return
	}

	customer, err := h.customers.FindByEmail(email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(customer))
}

func (h *Handlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ValidationFailedError("malformed request body"))
		return
	}

	customer, err := h.customers.Create(req.Name, req.Email, req.IsLoyaltyMember)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCustomer(customer))
}

func (h *Handlers) runSimulation(w http.ResponseWriter, r *http.Request) {
	reports, err := h.harness.RunAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
