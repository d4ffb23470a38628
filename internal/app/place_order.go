package app

import (
	"context"
	"fmt"

	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/metrics"
)

type PlaceOrderRequest struct {
	CustomerName string
	DrinkType    string
	CustomerID   *int64
}

// PlaceOrder validates the request against the drink catalog, resolves the
// loyalty flag from the linked customer and enqueues a PENDING order. Price
// and prep time always come from the catalog, never from the client.
func (s *Scheduler) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Order, error) {
	spec, known := s.catalog.Lookup(req.DrinkType)
	if !known {
		return domain.Order{}, fmt.Errorf("validation: %w", domain.UnknownDrinkError(req.DrinkType))
	}

	customerName := req.CustomerName
	loyaltyMember := false
	if req.CustomerID != nil {
		customer, err := s.customers.Get(*req.CustomerID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("customers.Get: %w", err)
		}
		loyaltyMember = customer.LoyaltyMember
		if customerName == "" {
			customerName = customer.Name
		}
	}
	if customerName == "" {
		return domain.Order{}, fmt.Errorf("validation: %w",
			domain.ValidationFailedError("customer name must not be empty"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	order := &domain.Order{
		ID:              s.queue.NextID(),
		CustomerName:    customerName,
		DrinkType:       req.DrinkType,
		PrepTimeMinutes: spec.PrepTimeMinutes,
		Price:           spec.Price,
		ArrivalTime:     now,
		Status:          domain.StatusPending,
		LoyaltyMember:   loyaltyMember,
		CustomerID:      req.CustomerID,
	}
	order.PriorityScore = s.priority.Score(order, now)

	if err := s.queue.Enqueue(order); err != nil {
		return domain.Order{}, fmt.Errorf("queue.Enqueue: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	return *order, nil
}
