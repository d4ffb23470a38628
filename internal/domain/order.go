package domain

import (
	"time"
)

type OrderStatus uint8

const (
	StatusPending OrderStatus = iota
	StatusProcessing
	StatusCompleted
	StatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusProcessing:
		return "PROCESSING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo encodes the order lifecycle: PENDING -> PROCESSING ->
// COMPLETED, with cancellation allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

type Order struct {
	ID              int64
	CustomerName    string
	DrinkType       string
	PrepTimeMinutes int
	Price           float64
	ArrivalTime     time.Time
	StartTime       *time.Time
	EndTime         *time.Time
	Status          OrderStatus
	PriorityScore   float64
	TimesSkipped    int
	LoyaltyMember   bool
	CustomerID      *int64
	BaristaID       *int64
}

func (o *Order) WaitMinutes(now time.Time) float64 {
	if o.ArrivalTime.IsZero() || now.Before(o.ArrivalTime) {
		return 0
	}
	return now.Sub(o.ArrivalTime).Minutes()
}

// ServiceWaitMinutes is the time the customer stood in the queue before a
// barista picked the order up. Falls back to WaitMinutes while still pending.
func (o *Order) ServiceWaitMinutes(now time.Time) float64 {
	if o.StartTime != nil {
		return o.StartTime.Sub(o.ArrivalTime).Minutes()
	}
	return o.WaitMinutes(now)
}
