package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"coffee-scheduler/internal/adapter/file"
	"coffee-scheduler/internal/adapter/httpapi"
	"coffee-scheduler/internal/adapter/inmemory"
	"coffee-scheduler/internal/app"
	"coffee-scheduler/internal/config"
	"coffee-scheduler/internal/domain"
	"coffee-scheduler/internal/infra"
	"coffee-scheduler/internal/metrics"
	"coffee-scheduler/internal/workerpool"
	"coffee-scheduler/pkg/cache"
)

var configPath string

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rootCmd := &cobra.Command{
		Use:   "coffee-scheduler",
		Short: "Smart queue scheduler for drink orders",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to config file")

	rootCmd.AddCommand(serveCmd(), simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			catalog, err := domain.LoadDrinkCatalog(cfg.Shop.DrinksPath)
			if err != nil {
				return err
			}

			var cacheCfg *cache.Config
			if cfg.Cache.Enabled {
				cacheCfg = &cache.Config{MaxSize: cfg.Cache.MaxSize, TTL: cfg.Cache.TTL}
				slog.Info("cache enabled", "max_size", cfg.Cache.MaxSize, "ttl", cfg.Cache.TTL)
			} else {
				slog.Info("cache disabled")
			}
			customers := inmemory.NewCustomerRegistry(cacheCfg)

			archive, err := file.NewOrderArchive(cfg.Shop.ArchivePath)
			if err != nil {
				return err
			}

			queue := inmemory.NewOrderQueue()
			roster := inmemory.NewRoster(cfg.Shop.Baristas)
			priority := app.NewPriorityModel(cfg.Priority)
			scheduler := app.NewScheduler(queue, roster, customers, catalog, priority, time.Now).
				WithArchive(archive, cfg.Scheduler.ArchiveRetention)

			pool := workerpool.New(cfg.Service.WorkerLimit, cfg.Service.QueueSize)
			harness := app.NewSimulationHarness(cfg.Simulation, cfg.Priority, catalog).WithPool(pool)

			ctx, cancel := context.WithCancel(context.Background())
			go scheduler.Run(ctx, cfg.Scheduler.TickInterval)

			go func() {
				ticker := time.NewTicker(10 * time.Second)
				defer ticker.Stop()
				for range ticker.C {
					metrics.WorkerPoolActive.Set(float64(pool.ActiveWorkers()))
					metrics.WorkerPoolQueueSize.Set(float64(pool.QueueSize()))
				}
			}()

			if cfg.Cache.Enabled {
				go func() {
					ticker := time.NewTicker(cfg.Cache.CleanupInterval)
					defer ticker.Stop()
					for range ticker.C {
						customers.CleanupExpired()
						for cacheType, size := range customers.GetCacheStats() {
							metrics.CacheSize.WithLabelValues(cacheType).Set(float64(size))
						}
					}
				}()
			}

			rateLimiter := limiter.New(memory.NewStore(), limiter.Rate{
				Period: cfg.RateLimit.Period,
				Limit:  cfg.RateLimit.Limit,
			})

			handlers := httpapi.NewHandlers(scheduler, customers, harness)
			apiServer := &http.Server{
				Addr:              cfg.Service.HTTPAddress,
				Handler:           httpapi.NewRouter(handlers, rateLimiter),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       cfg.Service.Timeout,
				WriteTimeout:      cfg.Service.Timeout,
			}
			go func() {
				slog.Info("http server listening", "addr", cfg.Service.HTTPAddress)
				if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("http server failed", "error", err)
					os.Exit(1)
				}
			}()

			var cacheManager infra.CacheManager
			if cfg.Cache.Enabled {
				cacheManager = customers
			}
			admin := infra.NewAdmin(cfg.Service.AdminAddress, pool, cacheManager)
			admin.Start()

			infra.Graceful(
				func(shutdownCtx context.Context) {
					cancel()
					ctxTimeout, cancelTimeout := context.WithTimeout(shutdownCtx, 10*time.Second)
					defer cancelTimeout()
					if err := apiServer.Shutdown(ctxTimeout); err != nil {
						slog.Warn("http server shutdown failed", "error", err)
					}
				},
				func(shutdownCtx context.Context) { admin.Stop(shutdownCtx) },
				func(context.Context) { pool.Close() },
			)
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	var cases int
	var seed int64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the batch simulator and print per-test-case reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			simCfg := config.DefaultSimulation()
			priorityCfg := config.DefaultPriority()
			catalog := domain.DefaultDrinkCatalog()

			if cfg, err := config.Load(configPath); err == nil {
				simCfg = cfg.Simulation
				priorityCfg = cfg.Priority
				if loaded, catErr := domain.LoadDrinkCatalog(cfg.Shop.DrinksPath); catErr == nil {
					catalog = loaded
				}
			}

			if cases > 0 {
				simCfg.TestCases = cases
			}
			if seed != 0 {
				simCfg.BaseSeed = seed
			}

			harness := app.NewSimulationHarness(simCfg, priorityCfg, catalog)
			reports, err := harness.RunAll(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}

	cmd.Flags().IntVar(&cases, "cases", 0, "override number of test cases")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override base seed")
	return cmd
}
