package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all pipeline configuration
type Config struct {
	// Datastore
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// stats.nba.com API
	NBABaseURL      string        `envconfig:"NBA_BASE_URL" default:"https://stats.nba.com/stats"`
	NBATimeout      time.Duration `envconfig:"NBA_TIMEOUT" default:"120s"`
	NBARequestDelay time.Duration `envconfig:"NBA_REQUEST_DELAY" default:"2s"`

	// Basketball-Reference scrape
	BBRefBaseURL string        `envconfig:"BBREF_BASE_URL" default:"https://www.basketball-reference.com"`
	BBRefTimeout time.Duration `envconfig:"BBREF_TIMEOUT" default:"30s"`

	// Retry policy for upstream fetches
	FetchMaxAttempts int           `envconfig:"FETCH_MAX_ATTEMPTS" default:"3"`
	FetchBaseDelay   time.Duration `envconfig:"FETCH_BASE_DELAY" default:"10s"`

	// Shot chart job pacing
	ShotPlayerBatchSize int           `envconfig:"SHOT_PLAYER_BATCH_SIZE" default:"10"`
	ShotPlayerDelay     time.Duration `envconfig:"SHOT_PLAYER_DELAY" default:"3s"`
	ShotBatchDelay      time.Duration `envconfig:"SHOT_BATCH_DELAY" default:"30s"`

	// Seasons to sync (current + prior N-1)
	NumSeasons int `envconfig:"NUM_SEASONS" default:"4"`

	// Redis (optional Tier-1 ID cache)
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTLTier1 int    `envconfig:"CACHE_TTL_TIER1" default:"3600"` // seconds

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler   bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	PlayersCron       string `envconfig:"PLAYERS_CRON" default:"0 6 * * *"`
	SeasonStatsCron   string `envconfig:"SEASON_STATS_CRON" default:"30 6 * * *"`
	AdvancedStatsCron string `envconfig:"ADVANCED_STATS_CRON" default:"0 7 * * *"`
	GameLogsCron      string `envconfig:"GAME_LOGS_CRON" default:"30 7 * * *"`
	PercentilesCron   string `envconfig:"PERCENTILES_CRON" default:"0 8 * * *"`
	ShotChartsCron    string `envconfig:"SHOT_CHARTS_CRON" default:"0 9 * * 1"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables.
// It first attempts to load from a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.NumSeasons < 1 {
		return fmt.Errorf("NUM_SEASONS must be at least 1")
	}
	if c.FetchMaxAttempts < 1 {
		return fmt.Errorf("FETCH_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error.
// Use this in main() where we want to fail fast.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
