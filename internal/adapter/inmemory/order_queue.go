package inmemory

import (
	"fmt"
	"sort"
	"time"

	"coffee-scheduler/internal/domain"
)

// OrderQueue holds every active order keyed by id. It is deliberately not
// self-locking: the scheduler serializes all access (single writer), and the
// simulation harness builds a private queue per test case.
type OrderQueue struct {
	orders map[int64]*domain.Order
	nextID int64
}

func NewOrderQueue() *OrderQueue {
	return &OrderQueue{
		orders: make(map[int64]*domain.Order),
	}
}

// NextID hands out the next order id. Ids are unique for the queue's
// lifetime and never reused.
func (q *OrderQueue) NextID() int64 {
	q.nextID++
	return q.nextID
}

func (q *OrderQueue) Enqueue(order *domain.Order) error {
	if order == nil {
		return domain.ValidationFailedError("order is nil")
	}
	if _, exists := q.orders[order.ID]; exists {
		return domain.DuplicateOrderError(order.ID)
	}
	order.Status = domain.StatusPending
	q.orders[order.ID] = order
	if order.ID > q.nextID {
		q.nextID = order.ID
	}
	return nil
}

func (q *OrderQueue) Get(orderID int64) (*domain.Order, error) {
	order, exists := q.orders[orderID]
	if !exists {
		return nil, domain.EntityNotFoundError("order", fmt.Sprintf("%d", orderID))
	}
	return order, nil
}

// RescoreAll recomputes the priority of every pending order. The scorer is
// injected so the queue stays free of policy.
func (q *OrderQueue) RescoreAll(now time.Time, score func(*domain.Order, time.Time) float64) {
	for _, order := range q.orders {
		if order.Status == domain.StatusPending {
			order.PriorityScore = score(order, now)
		}
	}
}

// TopCandidates returns up to k pending orders ranked by score descending.
// Ties go to the earlier arrival, then the lower id, so the ranking is a
// deterministic total order.
func (q *OrderQueue) TopCandidates(k int) []*domain.Order {
	if k <= 0 {
		return nil
	}
	pending := make([]*domain.Order, 0, len(q.orders))
	for _, order := range q.orders {
		if order.Status == domain.StatusPending {
			pending = append(pending, order)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if !a.ArrivalTime.Equal(b.ArrivalTime) {
			return a.ArrivalTime.Before(b.ArrivalTime)
		}
		return a.ID < b.ID
	})
	if len(pending) > k {
		pending = pending[:k]
	}
	return pending
}

func (q *OrderQueue) MarkSkipped(orderID int64) error {
	order, err := q.Get(orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusPending {
		return domain.OrderNotPendingError(orderID, order.Status)
	}
	order.TimesSkipped++
	return nil
}

// Transition moves an order through its lifecycle, stamping StartTime /
// EndTime exactly once. Illegal moves leave the order untouched.
func (q *OrderQueue) Transition(orderID int64, next domain.OrderStatus, now time.Time) error {
	order, err := q.Get(orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(next) {
		return domain.InvalidTransitionError(orderID, order.Status, next)
	}

	switch next {
	case domain.StatusProcessing:
		if order.StartTime == nil {
			t := now
			order.StartTime = &t
		}
	case domain.StatusCompleted, domain.StatusCancelled:
		if order.EndTime == nil {
			t := now
			order.EndTime = &t
		}
	}
	order.Status = next
	return nil
}

func (q *OrderQueue) Cancel(orderID int64, now time.Time) error {
	order, err := q.Get(orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return domain.OrderNotCancellableError(orderID, order.Status)
	}
	return q.Transition(orderID, domain.StatusCancelled, now)
}

func (q *OrderQueue) PendingCount() int {
	count := 0
	for _, order := range q.orders {
		if order.Status == domain.StatusPending {
			count++
		}
	}
	return count
}

func (q *OrderQueue) CountByStatus() map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int, 4)
	for _, order := range q.orders {
		counts[order.Status]++
	}
	return counts
}

// Processing returns in-flight orders sorted by id.
func (q *OrderQueue) Processing() []*domain.Order {
	var processing []*domain.Order
	for _, order := range q.orders {
		if order.Status == domain.StatusProcessing {
			processing = append(processing, order)
		}
	}
	sort.Slice(processing, func(i, j int) bool { return processing[i].ID < processing[j].ID })
	return processing
}

// All returns every active order sorted by id.
func (q *OrderQueue) All() []*domain.Order {
	all := make([]*domain.Order, 0, len(q.orders))
	for _, order := range q.orders {
		all = append(all, order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// DrainTerminal removes and returns orders that reached a terminal state
// before the cutoff, sorted by id. The scheduler feeds them to the archive.
func (q *OrderQueue) DrainTerminal(cutoff time.Time) []*domain.Order {
	var drained []*domain.Order
	for id, order := range q.orders {
		if order.Status.IsTerminal() && order.EndTime != nil && order.EndTime.Before(cutoff) {
			drained = append(drained, order)
			delete(q.orders, id)
		}
	}
	sort.Slice(drained, func(i, j int) bool { return drained[i].ID < drained[j].ID })
	return drained
}
