package app

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"coffee-scheduler/internal/adapter/inmemory"
	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/metrics"
	"coffee-scheduler/internal/workerpool"
)

type SimulationReport struct {
	TestCaseID         int            `json:"testCaseId"`
	TotalOrders        int            `json:"totalOrders"`
	AverageWaitMinutes float64        `json:"averageWaitTimeMinutes"`
	BaristaWorkload    map[string]int `json:"baristaWorkload"`
	ComplaintsCount    int            `json:"complaintsCount"`
}

// SimulationHarness replays synthetic order streams through a fresh
// Scheduler per test case, in simulated time. A given seed always produces
// the identical report: the generator is seeded, the clock starts at a fixed
// epoch and every tie-break along the pipeline is deterministic.
type SimulationHarness struct {
	cfg      config.SimulationConfig
	priority config.PriorityConfig
	catalog  domain.DrinkCatalog
	pool     *workerpool.Pool
}

// simEpoch anchors simulated time: the shop opens at 07:00 and arrivals
// spread over the configured window, like the original morning rush.
var simEpoch = time.Date(2024, time.January, 1, 7, 0, 0, 0, time.UTC)

func NewSimulationHarness(cfg config.SimulationConfig, priority config.PriorityConfig, catalog domain.DrinkCatalog) *SimulationHarness {
	return &SimulationHarness{
		cfg:      cfg,
		priority: priority,
		catalog:  catalog,
	}
}

// WithPool routes test cases through the shared worker pool instead of an
// ad-hoc errgroup.
func (h *SimulationHarness) WithPool(pool *workerpool.Pool) *SimulationHarness {
	h.pool = pool
	return h
}

// RunAll executes the configured number of test cases concurrently. Cases
// share nothing; reports come back ordered by case id.
func (h *SimulationHarness) RunAll(ctx context.Context) ([]SimulationReport, error) {
	cases := h.cfg.TestCases
	if cases <= 0 {
		return nil, domain.ValidationFailedError("simulation must run at least one test case")
	}
	reports := make([]SimulationReport, cases)

	if h.pool != nil {
		respCh := make(chan workerpool.Response, cases)
		for i := 0; i < cases; i++ {
			caseID := i + 1
			h.pool.Submit(workerpool.Job{
				Ctx: ctx,
				Run: func(jobCtx context.Context) (any, error) {
					return h.RunTestCase(jobCtx, caseID)
				},
				Resp: respCh,
			})
		}

		var errs error
		for i := 0; i < cases; i++ {
			resp := <-respCh
			if resp.Err != nil {
				errs = multierr.Append(errs, resp.Err)
				continue
			}
			report := resp.Value.(SimulationReport)
			reports[report.TestCaseID-1] = report
		}
		if errs != nil {
			return nil, errs
		}
		return reports, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := 0; i < cases; i++ {
		caseID := i + 1
		g.Go(func() error {
			report, err := h.RunTestCase(gctx, caseID)
			if err != nil {
				return err
			}
			reports[caseID-1] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// RunTestCase builds a private queue and roster, generates the order stream
// from the case's seed and ticks simulated time forward until every order is
// terminal.
func (h *SimulationHarness) RunTestCase(ctx context.Context, caseID int) (SimulationReport, error) {
	seed := h.cfg.BaseSeed + int64(caseID)
	rng := rand.New(rand.NewSource(seed))

	orders := h.generateOrders(rng)
	if len(orders) == 0 {
		return SimulationReport{}, domain.ValidationFailedError("simulation generated no orders")
	}

	queue := inmemory.NewOrderQueue()
	roster := inmemory.NewRoster(h.cfg.Baristas)

	// the scheduler reads the clock through this closure; ticking advances it
	now := orders[0].ArrivalTime
	sched := NewScheduler(queue, roster, nil, h.catalog, NewPriorityModel(h.priority), func() time.Time {
		return now
	})

	// worst case every order runs serially on one barista; past this point
	// the simulation is stuck, not slow
	hardStop := simEpoch.Add(h.cfg.ArrivalWindow)
	for _, order := range orders {
		hardStop = hardStop.Add(time.Duration(order.PrepTimeMinutes) * time.Minute)
	}

	next := 0
	for {
		if err := ctx.Err(); err != nil {
			metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
			return SimulationReport{}, err
		}

		for next < len(orders) && !orders[next].ArrivalTime.After(now) {
			if err := queue.Enqueue(orders[next]); err != nil {
				metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
				return SimulationReport{}, fmt.Errorf("enqueue synthetic order: %w", err)
			}
			next++
		}

		if _, err := sched.Tick(now); err != nil {
			metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
			return SimulationReport{}, fmt.Errorf("tick at %s: %w", now, err)
		}

		if next == len(orders) && allTerminal(orders) {
			break
		}
		if now.After(hardStop) {
			metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
			return SimulationReport{}, domain.InvariantViolationError(
				fmt.Sprintf("test case %d did not converge by %s", caseID, hardStop))
		}
		now = now.Add(h.cfg.TickStep)
	}

	metrics.SimulationRunsTotal.WithLabelValues("ok").Inc()
	return h.buildReport(caseID, orders, roster), nil
}

func (h *SimulationHarness) generateOrders(rng *rand.Rand) []*domain.Order {
	count := h.cfg.MinOrders
	if h.cfg.MaxOrders > h.cfg.MinOrders {
		count += rng.Intn(h.cfg.MaxOrders - h.cfg.MinOrders + 1)
	}

	names := h.catalog.Names()
	windowSeconds := int64(h.cfg.ArrivalWindow / time.Second)
	if windowSeconds <= 0 {
		windowSeconds = 1
	}

	orders := make([]*domain.Order, 0, count)
	for i := 0; i < count; i++ {
		drink := names[rng.Intn(len(names))]
		spec := h.catalog[drink]
		orders = append(orders, &domain.Order{
			CustomerName:    fmt.Sprintf("Guest %d", i+1),
			DrinkType:       drink,
			PrepTimeMinutes: spec.PrepTimeMinutes,
			Price:           spec.Price,
			ArrivalTime:     simEpoch.Add(time.Duration(rng.Int63n(windowSeconds)) * time.Second),
			Status:          domain.StatusPending,
			LoyaltyMember:   rng.Float64() < h.cfg.LoyaltyRatio,
		})
	}

	// ids follow arrival order so tie-breaks inside the queue stay stable
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ArrivalTime.Before(orders[j].ArrivalTime)
	})
	for i, order := range orders {
		order.ID = int64(i + 1)
	}
	return orders
}

func (h *SimulationHarness) buildReport(caseID int, orders []*domain.Order, roster BaristaRoster) SimulationReport {
	var totalWait float64
	completed := 0
	complaints := 0
	for _, order := range orders {
		if order.Status == domain.StatusCompleted && order.EndTime != nil {
			totalWait += order.EndTime.Sub(order.ArrivalTime).Minutes()
			completed++
		}
		if order.StartTime != nil &&
			order.StartTime.Sub(order.ArrivalTime).Minutes() > h.priority.ComplaintThresholdMinute {
			complaints++
		}
	}

	avgWait := 0.0
	if completed > 0 {
		avgWait = totalWait / float64(completed)
	}

	workload := make(map[string]int)
	for _, barista := range roster.All() {
		workload[barista.Name] = barista.TotalOrdersCompleted
	}

	return SimulationReport{
		TestCaseID:         caseID,
		TotalOrders:        len(orders),
		AverageWaitMinutes: avgWait,
		BaristaWorkload:    workload,
		ComplaintsCount:    complaints,
	}
}

func allTerminal(orders []*domain.Order) bool {
	for _, order := range orders {
		if !order.Status.IsTerminal() {
			return false
		}
	}
	return true
}
