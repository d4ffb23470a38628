package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/metrics"
)

// Scheduler owns one shop's mutable state: the order queue and the barista
// roster. All writes — inbound API calls and the periodic tick — run under
// mu, so an order can never be observed PROCESSING without a start time or
// bound to two baristas. Reads copy under RLock.
type Scheduler struct {
	mu sync.RWMutex

	queue     OrderQueue
	roster    BaristaRoster
	customers CustomerDirectory
	catalog   domain.DrinkCatalog
	priority  PriorityModel
	engine    *AssignmentEngine

	archive   ArchiveSink
	retention time.Duration

	now func() time.Time
}

func NewScheduler(
	queue OrderQueue,
	roster BaristaRoster,
	customers CustomerDirectory,
	catalog domain.DrinkCatalog,
	priority PriorityModel,
	now func() time.Time,
) *Scheduler {
	return &Scheduler{
		queue:     queue,
		roster:    roster,
		customers: customers,
		catalog:   catalog,
		priority:  priority,
		engine:    NewAssignmentEngine(priority, roster.Size()),
		now:       now,
	}
}

// WithArchive drains terminal orders older than retention to sink on each
// tick.
func (s *Scheduler) WithArchive(sink ArchiveSink, retention time.Duration) *Scheduler {
	s.archive = sink
	s.retention = retention
	return s
}

func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Tick advances the shop to now: finish brews that are due, then hand idle
// baristas the top of the queue. Returns the assignments made.
func (s *Scheduler) Tick(now time.Time) ([]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.completeDue(now); err != nil {
		return nil, err
	}

	idle := s.roster.Idle(now)
	assignments, err := s.engine.Assign(idle, s.queue, now)
	if err != nil {
		return assignments, err
	}

	s.drainArchive(now)
	s.publishGauges()
	return assignments, nil
}

// completeDue closes every PROCESSING order whose barista has finished. An
// in-flight order without a bound barista means scheduler state is corrupt;
// the tick halts rather than guessing.
func (s *Scheduler) completeDue(now time.Time) error {
	for _, order := range s.queue.Processing() {
		if order.BaristaID == nil {
			return domain.InvariantViolationError(
				fmt.Sprintf("order %d is PROCESSING with no bound barista", order.ID))
		}
		barista, err := s.roster.Get(*order.BaristaID)
		if err != nil {
			return domain.InvariantViolationError(
				fmt.Sprintf("order %d bound to unknown barista %d", order.ID, *order.BaristaID))
		}
		if barista.BusyUntil == nil || barista.BusyUntil.After(now) {
			continue
		}

		if err := s.queue.Transition(order.ID, domain.StatusCompleted, now); err != nil {
			return fmt.Errorf("complete order %d: %w", order.ID, err)
		}
		barista.TotalOrdersCompleted++
		barista.BusyUntil = nil
		metrics.OrdersCompletedTotal.Inc()
	}
	return nil
}

func (s *Scheduler) drainArchive(now time.Time) {
	if s.archive == nil || s.retention <= 0 {
		return
	}
	drained := s.queue.DrainTerminal(now.Add(-s.retention))
	if len(drained) == 0 {
		return
	}
	if err := s.archive.Append(drained); err != nil {
		slog.Error("archive append failed", "orders", len(drained), "error", err)
	}
}

func (s *Scheduler) publishGauges() {
	counts := s.queue.CountByStatus()
	for _, status := range []domain.OrderStatus{
		domain.StatusPending, domain.StatusProcessing, domain.StatusCompleted, domain.StatusCancelled,
	} {
		metrics.OrdersByStatus.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
	metrics.PendingQueueDepth.Set(float64(counts[domain.StatusPending]))
}

// Run ticks the scheduler on a fixed cadence until ctx is cancelled. The
// timer wait is the only real blocking point in the core.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler loop stopped")
			return
		case <-ticker.C:
			now := s.now()
			assignments, err := s.Tick(now)
			if err != nil {
				slog.Error("tick failed", "now", now, "error", err)
				continue
			}
			for _, a := range assignments {
				slog.Info("order assigned", "order_id", a.OrderID, "barista_id", a.BaristaID)
			}
		}
	}
}
