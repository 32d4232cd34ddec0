package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"courtiq/pipeline/internal/bbref"
	"courtiq/pipeline/internal/cache"
	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/config"
	"courtiq/pipeline/internal/metrics"
	"courtiq/pipeline/internal/repository"
	"courtiq/pipeline/internal/scheduler"
	"courtiq/pipeline/internal/sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting CourtIQ data pipeline worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	db, err := repository.NewDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	retry := client.RetryPolicy{
		MaxAttempts: cfg.FetchMaxAttempts,
		BaseDelay:   cfg.FetchBaseDelay,
	}
	nbaClient := client.NewClient(cfg.NBABaseURL, cfg.NBATimeout, cfg.NBARequestDelay, retry)
	bbrefClient := bbref.NewClient(cfg.BBRefBaseURL, cfg.BBRefTimeout, retry)
	log.Info().Msg("Upstream clients initialized")

	tier1Cache := cache.New(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB,
		time.Duration(cfg.CacheTTLTier1)*time.Second)
	defer tier1Cache.Close()

	syncer := sync.New(db, nbaClient, bbrefClient, tier1Cache, cfg)

	if cfg.EnableMetrics {
		go startMetricsServer(strconv.Itoa(cfg.MetricsPort))

		startTime := time.Now()
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					metrics.SystemUptime.Set(time.Since(startTime).Seconds())
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	sched := scheduler.NewScheduler(cfg, syncer)
	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	} else {
		log.Warn().Msg("Scheduler disabled; worker will idle until shutdown")
	}

	<-ctx.Done()

	sched.Stop()
	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zerolog.ParseLevel(lvl); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Str("level", level.String()).Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
