package app

import (
	"context"
	"fmt"

	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/metrics"
)

// CancelOrder is a synchronous transition, legal from PENDING and
// PROCESSING. Cancelling an in-flight order frees its barista immediately;
// no other order's score is touched.
func (s *Scheduler) CancelOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	order, err := s.queue.Get(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("queue.Get: %w", err)
	}

	wasProcessing := order.Status == domain.StatusProcessing

	if err := s.queue.Cancel(orderID, now); err != nil {
		return domain.Order{}, fmt.Errorf("queue.Cancel: %w", err)
	}

	if wasProcessing && order.BaristaID != nil {
		if barista, rosterErr := s.roster.Get(*order.BaristaID); rosterErr == nil {
			barista.BusyUntil = nil
		}
	}

	metrics.OrdersCancelledTotal.Inc()
	return *order, nil
}
