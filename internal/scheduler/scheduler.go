package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/config"
	"courtiq/pipeline/internal/sync"
)

// Scheduler runs the pipeline jobs on their cron schedules. Stats jobs
// run nightly after the roster refresh; shot charts run weekly because
// the per-player endpoint is slow and heavily throttled.
type Scheduler struct {
	cfg    *config.Config
	syncer *sync.Syncer
	cron   *cron.Cron
}

// NewScheduler creates a scheduler around a configured Syncer
func NewScheduler(cfg *config.Config, syncer *sync.Syncer) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		syncer: syncer,
		cron:   cron.New(),
	}
}

// Start registers every job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"players", s.cfg.PlayersCron, s.syncer.SyncPlayers},
		{"season_stats", s.cfg.SeasonStatsCron, s.syncer.SyncSeasonStats},
		{"advanced_stats", s.cfg.AdvancedStatsCron, s.runAdvanced},
		{"game_logs", s.cfg.GameLogsCron, s.syncer.SyncGameLogs},
		{"percentiles", s.cfg.PercentilesCron, s.syncer.SyncPercentiles},
		{"shot_charts", s.cfg.ShotChartsCron, s.runShotCharts},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := job.run(ctx); err != nil {
				log.Error().Err(err).Str("job", job.name).Msg("Scheduled job failed")
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		log.Info().Str("job", job.name).Str("schedule", job.spec).Msg("Job scheduled")
	}

	s.cron.Start()
	return nil
}

// runAdvanced chains the Basketball-Reference scrape after the
// stats.nba.com advanced sync, which blanks the scraped columns
func (s *Scheduler) runAdvanced(ctx context.Context) error {
	if err := s.syncer.SyncAdvancedStats(ctx); err != nil {
		return err
	}
	return s.syncer.SyncBBRefAdvanced(ctx)
}

func (s *Scheduler) runShotCharts(ctx context.Context) error {
	return s.syncer.SyncShotCharts(ctx, sync.ShotChartOptions{})
}

// Stop stops the cron loop, waiting for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Info().Msg("Scheduler stopped")
}
