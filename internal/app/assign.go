package app

import (
	"fmt"
	"time"

	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/metrics"
)

type Assignment struct {
	OrderID   int64
	BaristaID int64
}

// AssignmentEngine matches the highest-ranked pending orders to idle
// baristas, greedily. The candidate window is the roster size: the orders
// that full capacity would serve this tick. Candidates left over when idle
// baristas run out collect one skip each, which feeds back into their score.
type AssignmentEngine struct {
	priority   PriorityModel
	rosterSize int
}

func NewAssignmentEngine(priority PriorityModel, rosterSize int) *AssignmentEngine {
	if rosterSize <= 0 {
		rosterSize = 1
	}
	return &AssignmentEngine{
		priority:   priority,
		rosterSize: rosterSize,
	}
}

// Assign expects idle baristas sorted by id and must run inside the
// scheduler's critical section.
func (e *AssignmentEngine) Assign(idle []*domain.Barista, queue OrderQueue, now time.Time) ([]Assignment, error) {
	if len(idle) == 0 {
		return nil, nil
	}

	queue.RescoreAll(now, e.priority.Score)

	window := e.rosterSize
	if len(idle) > window {
		window = len(idle)
	}
	candidates := queue.TopCandidates(window)
	if len(candidates) == 0 {
		return nil, nil
	}

	var assignments []Assignment
	next := 0
	for _, barista := range idle {
		if next >= len(candidates) {
			break
		}
		order := candidates[next]
		next++

		if err := e.bind(order, barista, queue, now); err != nil {
			return assignments, err
		}
		assignments = append(assignments, Assignment{OrderID: order.ID, BaristaID: barista.ID})
	}

	// capacity exhausted: everyone left at the head of the ranking was
	// considered but not served, which is exactly one skip
	for _, order := range candidates[next:] {
		if err := queue.MarkSkipped(order.ID); err != nil {
			return assignments, fmt.Errorf("markSkipped: %w", err)
		}
		metrics.OrderSkipsTotal.Inc()
	}

	return assignments, nil
}

func (e *AssignmentEngine) bind(order *domain.Order, barista *domain.Barista, queue OrderQueue, now time.Time) error {
	if barista.IsBusy(now) {
		return domain.InvariantViolationError(
			fmt.Sprintf("barista %d offered for assignment while busy until %s", barista.ID, barista.BusyUntil))
	}

	if err := queue.Transition(order.ID, domain.StatusProcessing, now); err != nil {
		return fmt.Errorf("transition: %w", err)
	}

	baristaID := barista.ID
	order.BaristaID = &baristaID

	busyUntil := now.Add(time.Duration(order.PrepTimeMinutes) * time.Minute)
	barista.BusyUntil = &busyUntil
	barista.TotalMinutesAssigned += order.PrepTimeMinutes

	metrics.OrdersAssignedTotal.Inc()
	metrics.ServiceWaitMinutes.Observe(order.ServiceWaitMinutes(now))
	return nil
}
