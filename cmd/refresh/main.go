// Command refresh runs a single pipeline job and exits, mirroring the
// scheduled worker's behavior for manual or cron-external invocation.
//
//	refresh -job players
//	refresh -job shotcharts -season 2024-25 -no-resume
//	refresh -job all
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtiq/pipeline/internal/bbref"
	"courtiq/pipeline/internal/cache"
	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/config"
	"courtiq/pipeline/internal/repository"
	"courtiq/pipeline/internal/sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	jobName := flag.String("job", "", "job to run: players, seasonstats, advancedstats, bbrefadvanced, gamelogs, shotcharts, percentiles, all")
	season := flag.String("season", "", "season override for shotcharts, e.g. 2024-25")
	noResume := flag.Bool("no-resume", false, "refetch all players in shotcharts even if data exists")
	flag.Parse()

	setupLogger()

	if *jobName == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, cancelling run...")
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

	tier1Cache := cache.New(ctx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB,
		time.Duration(cfg.CacheTTLTier1)*time.Second)
	defer tier1Cache.Close()

	syncer := sync.New(db, nbaClient, bbrefClient, tier1Cache, cfg)

	shotOpts := sync.ShotChartOptions{Season: *season, NoResume: *noResume}

	if err := runJob(ctx, syncer, *jobName, shotOpts); err != nil {
		log.Error().Err(err).Str("job", *jobName).Msg("Job failed")
		os.Exit(1)
	}
}

func runJob(ctx context.Context, syncer *sync.Syncer, name string, shotOpts sync.ShotChartOptions) error {
	switch name {
	case "players":
		return syncer.SyncPlayers(ctx)
	case "seasonstats":
		return syncer.SyncSeasonStats(ctx)
	case "advancedstats":
		return syncer.SyncAdvancedStats(ctx)
	case "bbrefadvanced":
		return syncer.SyncBBRefAdvanced(ctx)
	case "gamelogs":
		return syncer.SyncGameLogs(ctx)
	case "shotcharts":
		return syncer.SyncShotCharts(ctx, shotOpts)
	case "percentiles":
		return syncer.SyncPercentiles(ctx)
	case "all":
		// Full refresh in dependency order: roster first, percentiles
		// last so they see fresh advanced rows
		steps := []func(context.Context) error{
			syncer.SyncPlayers,
			syncer.SyncSeasonStats,
			syncer.SyncAdvancedStats,
			syncer.SyncBBRefAdvanced,
			syncer.SyncGameLogs,
			syncer.SyncPercentiles,
		}
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return err
			}
		}
		return syncer.SyncShotCharts(ctx, shotOpts)
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

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
}
