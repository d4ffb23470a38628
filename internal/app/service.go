package app

import (
	"time"

	"coffee-scheduler/internal/domain"
)

// OrderQueue is the mutable collection of active orders. Implementations are
// not required to lock: the Scheduler serializes every call.
type OrderQueue interface {
	NextID() int64
	Enqueue(order *domain.Order) error
	Get(orderID int64) (*domain.Order, error)
	RescoreAll(now time.Time, score func(*domain.Order, time.Time) float64)
	TopCandidates(k int) []*domain.Order
	MarkSkipped(orderID int64) error
	Transition(orderID int64, next domain.OrderStatus, now time.Time) error
	Cancel(orderID int64, now time.Time) error
	PendingCount() int
	CountByStatus() map[domain.OrderStatus]int
	Processing() []*domain.Order
	All() []*domain.Order
	DrainTerminal(cutoff time.Time) []*domain.Order
}

type BaristaRoster interface {
	Get(baristaID int64) (*domain.Barista, error)
	Size() int
	All() []*domain.Barista
	Idle(now time.Time) []*domain.Barista
}

type CustomerDirectory interface {
	Get(customerID int64) (domain.Customer, error)
	FindByEmail(email string) (domain.Customer, error)
	Create(name, email string, loyaltyMember bool) (domain.Customer, error)
}

// ArchiveSink receives terminal orders drained from the queue.
type ArchiveSink interface {
	Append(orders []*domain.Order) error
}
