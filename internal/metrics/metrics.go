package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_orders_placed_total",
		Help: "The total number of orders placed",
	})

	OrdersAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_orders_assigned_total",
		Help: "The total number of orders assigned to baristas",
	})

	OrdersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_orders_completed_total",
		Help: "The total number of completed orders",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_orders_cancelled_total",
		Help: "The total number of cancelled orders",
	})

	OrdersByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coffee_orders_by_status",
		Help: "Number of active orders by status",
	}, []string{"status"})

	OrderSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_order_skips_total",
		Help: "Total number of skip events across pending orders",
	})

	ServiceWaitMinutes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coffee_service_wait_minutes",
		Help:    "Minutes between order arrival and barista pickup",
		Buckets: []float64{1, 2, 4, 6, 8, 10, 15, 20, 30},
	})

	PendingQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffee_pending_queue_depth",
		Help: "Number of orders currently waiting for a barista",
	})

	SimulationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffee_simulation_runs_total",
		Help: "Total number of simulation test cases executed",
	}, []string{"status"})

	WorkerPoolActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffee_worker_pool_active",
		Help: "Number of active workers in the pool",
	})

	WorkerPoolQueueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffee_worker_pool_queue_size",
		Help: "Current size of the worker pool queue",
	})

	CacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "coffee_cache_size",
		Help: "Current cache size by cache type",
	}, []string{"cache_type"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffee_cache_hits_total",
		Help: "Total number of cache hits/misses",
	}, []string{"cache_type", "result"})
)
