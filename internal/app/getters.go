package app

import (
	"context"
	"time"

	"coffee-scheduler/internal/domain"
)

// ListOrders returns a copy of every active order together with the instant
// the snapshot was taken. Pending copies carry a score recomputed at that
// instant; the queue itself is not mutated, so a poll never interferes with
// scheduling.
func (s *Scheduler) ListOrders(ctx context.Context) ([]domain.Order, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	live := s.queue.All()
	orders := make([]domain.Order, 0, len(live))
	for _, order := range live {
		snapshot := *order
		if snapshot.Status == domain.StatusPending {
			snapshot.PriorityScore = s.priority.Score(&snapshot, now)
		}
		orders = append(orders, snapshot)
	}
	return orders, now
}

func (s *Scheduler) ListBaristas(ctx context.Context) ([]domain.Barista, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	live := s.roster.All()
	baristas := make([]domain.Barista, 0, len(live))
	for _, barista := range live {
		snapshot := *barista
		if snapshot.BusyUntil != nil {
			t := *snapshot.BusyUntil
			snapshot.BusyUntil = &t
		}
		baristas = append(baristas, snapshot)
	}
	return baristas, now
}

func (s *Scheduler) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, err := s.queue.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	return *order, nil
}
