package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Service struct {
		HTTPAddress  string        `yaml:"http_address" env:"HTTP_ADDRESS"`
		AdminAddress string        `yaml:"admin_address" env:"ADMIN_ADDRESS"`
		Timeout      time.Duration `yaml:"timeout"`
		WorkerLimit  int           `yaml:"worker_limit"`
		QueueSize    int           `yaml:"queue_size"`
	} `yaml:"service"`

	Scheduler struct {
		TickInterval     time.Duration `yaml:"tick_interval"`
		ArchiveRetention time.Duration `yaml:"archive_retention"`
	} `yaml:"scheduler"`

	Priority PriorityConfig `yaml:"priority"`

	Shop struct {
		Baristas    int    `yaml:"baristas"`
		DrinksPath  string `yaml:"drinks_path" env:"DRINKS_PATH"`
		ArchivePath string `yaml:"archive_path" env:"ARCHIVE_PATH"`
	} `yaml:"shop"`

	Simulation SimulationConfig `yaml:"simulation"`

	RateLimit struct {
		Period time.Duration `yaml:"period"`
		Limit  int64         `yaml:"limit"`
	} `yaml:"rate_limit"`

	Cache struct {
		Enabled         bool          `yaml:"enabled"`
		MaxSize         int           `yaml:"max_size"`
		TTL             time.Duration `yaml:"ttl"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"cache"`
}

// PriorityConfig holds the scoring policy. Defaults reproduce the dashboard
// tiers: an order goes amber (>50) around 17 minutes of waiting and red
// (>80) around 27 minutes or after 4 skips.
type PriorityConfig struct {
	WaitWeight               float64 `yaml:"wait_weight" env:"PRIORITY_WAIT_WEIGHT"`
	SkipWeight               float64 `yaml:"skip_weight" env:"PRIORITY_SKIP_WEIGHT"`
	LoyaltyBonus             float64 `yaml:"loyalty_bonus" env:"PRIORITY_LOYALTY_BONUS"`
	ComplaintThresholdMinute float64 `yaml:"complaint_threshold_minutes"`
}

type SimulationConfig struct {
	TestCases     int           `yaml:"test_cases"`
	MinOrders     int           `yaml:"min_orders"`
	MaxOrders     int           `yaml:"max_orders"`
	Baristas      int           `yaml:"baristas"`
	TickStep      time.Duration `yaml:"tick_step"`
	ArrivalWindow time.Duration `yaml:"arrival_window"`
	LoyaltyRatio  float64       `yaml:"loyalty_ratio"`
	BaseSeed      int64         `yaml:"base_seed" env:"SIMULATION_SEED"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read yaml")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// Default returns a config with every policy knob set to its documented
// default, so a partial yaml file only overrides what it names.
func Default() *Config {
	cfg := &Config{}
	cfg.Service.HTTPAddress = ":8080"
	cfg.Service.AdminAddress = ":8081"
	cfg.Service.Timeout = 5 * time.Second
	cfg.Service.WorkerLimit = 4
	cfg.Service.QueueSize = 16

	cfg.Scheduler.TickInterval = 2 * time.Second
	cfg.Scheduler.ArchiveRetention = time.Hour

	cfg.Priority = DefaultPriority()

	cfg.Shop.Baristas = 3
	cfg.Shop.DrinksPath = "config/drinks.json"
	cfg.Shop.ArchivePath = "data/completed_orders.jsonl"

	cfg.Simulation = DefaultSimulation()

	cfg.RateLimit.Period = time.Second
	cfg.RateLimit.Limit = 5

	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 512
	cfg.Cache.TTL = 30 * time.Second
	cfg.Cache.CleanupInterval = time.Minute
	return cfg
}

func DefaultPriority() PriorityConfig {
	return PriorityConfig{
		WaitWeight:               3.0,
		SkipWeight:               20.0,
		LoyaltyBonus:             15.0,
		ComplaintThresholdMinute: 10,
	}
}

func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		TestCases:     10,
		MinOrders:     200,
		MaxOrders:     300,
		Baristas:      3,
		TickStep:      30 * time.Second,
		ArrivalWindow: 3 * time.Hour,
		LoyaltyRatio:  0.2,
		BaseSeed:      1,
	}
}
