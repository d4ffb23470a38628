package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/workerpool"
)

func smallSimConfig() config.SimulationConfig {
	return config.SimulationConfig{
		TestCases:     3,
		MinOrders:     40,
		MaxOrders:     60,
		Baristas:      3,
		TickStep:      30 * time.Second,
		ArrivalWindow: time.Hour,
		LoyaltyRatio:  0.2,
		BaseSeed:      1,
	}
}

func Test_Harness_SameSeedSameReport(t *testing.T) {
	t.Parallel()

	harness := NewSimulationHarness(smallSimConfig(), config.DefaultPriority(), domain.DefaultDrinkCatalog())

	first, err := harness.RunTestCase(context.Background(), 1)
	require.NoError(t, err)
	second, err := harness.RunTestCase(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func Test_Harness_CasesAreIndependent(t *testing.T) {
	t.Parallel()

	harness := NewSimulationHarness(smallSimConfig(), config.DefaultPriority(), domain.DefaultDrinkCatalog())

	// running case 2 between two runs of case 1 must not leak state into it
	baseline, err := harness.RunTestCase(context.Background(), 1)
	require.NoError(t, err)
	_, err = harness.RunTestCase(context.Background(), 2)
	require.NoError(t, err)
	replay, err := harness.RunTestCase(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, baseline, replay)
}

func Test_Harness_RunAll(t *testing.T) {
	t.Parallel()

	cfg := smallSimConfig()
	harness := NewSimulationHarness(cfg, config.DefaultPriority(), domain.DefaultDrinkCatalog())

	reports, err := harness.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, cfg.TestCases)

	for i, report := range reports {
		assert.Equal(t, i+1, report.TestCaseID)
		assert.GreaterOrEqual(t, report.TotalOrders, cfg.MinOrders)
		assert.LessOrEqual(t, report.TotalOrders, cfg.MaxOrders)
		assert.GreaterOrEqual(t, report.AverageWaitMinutes, 0.0)

		// nothing is cancelled in a simulation, so every order lands on a barista
		served := 0
		for _, completed := range report.BaristaWorkload {
			served += completed
		}
		assert.Equal(t, report.TotalOrders, served, "case %d", report.TestCaseID)
		assert.Len(t, report.BaristaWorkload, cfg.Baristas)
	}
}

func Test_Harness_PoolMatchesErrgroup(t *testing.T) {
	t.Parallel()

	cfg := smallSimConfig()
	priority := config.DefaultPriority()
	catalog := domain.DefaultDrinkCatalog()

	plain, err := NewSimulationHarness(cfg, priority, catalog).RunAll(context.Background())
	require.NoError(t, err)

	pool := workerpool.New(2, 8)
	defer pool.Close()
	pooled, err := NewSimulationHarness(cfg, priority, catalog).WithPool(pool).RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, plain, pooled)
}

func Test_Harness_ComplaintsGrowAsThresholdDrops(t *testing.T) {
	t.Parallel()

	cfg := smallSimConfig()
	// a morning-rush load: arrivals outpace three baristas, so queues form
	// and some orders genuinely have to wait
	cfg.MinOrders = 250
	cfg.MaxOrders = 250
	catalog := domain.DefaultDrinkCatalog()

	counts := make([]int, 0, 3)
	for _, threshold := range []float64{30, 10, 0} {
		priority := config.DefaultPriority()
		priority.ComplaintThresholdMinute = threshold
		report, err := NewSimulationHarness(cfg, priority, catalog).RunTestCase(context.Background(), 1)
		require.NoError(t, err)
		counts = append(counts, report.ComplaintsCount)
	}

	assert.LessOrEqual(t, counts[0], counts[1])
	assert.LessOrEqual(t, counts[1], counts[2])
	assert.Positive(t, counts[2], "with a zero threshold any queued start is a complaint")
}

func Test_Harness_RunAll_NoCases(t *testing.T) {
	t.Parallel()

	cfg := smallSimConfig()
	cfg.TestCases = 0
	harness := NewSimulationHarness(cfg, config.DefaultPriority(), domain.DefaultDrinkCatalog())

	_, err := harness.RunAll(context.Background())
	var domainErr domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrorCodeValidationFailed, domainErr.Code)
}

func Test_Harness_CancelledContext(t *testing.T) {
	t.Parallel()

	harness := NewSimulationHarness(smallSimConfig(), config.DefaultPriority(), domain.DefaultDrinkCatalog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := harness.RunTestCase(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
