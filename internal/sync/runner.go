package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/metrics"
)

// ledger is the refresh log surface the runner needs. The concrete
// implementation is repository.RefreshLogRepository.
type ledger interface {
	Start(ctx context.Context, jobName string) (int, error)
	Complete(ctx context.Context, id, playersUpdated int) error
	Fail(ctx context.Context, id int, errMsg string) error
}

// runJob brackets one job body with the refresh ledger. A body error or
// panic always reaches the Fail transition; no run is left "started".
func runJob(ctx context.Context, l ledger, jobName string, body func(context.Context) (int, error)) (err error) {
	start := time.Now()

	logID, err := l.Start(ctx, jobName)
	if err != nil {
		return fmt.Errorf("failed to open refresh log for %s: %w", jobName, err)
	}
	log.Info().Str("job", jobName).Int("log_id", logID).Msg("Job started")

	completed := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", jobName, r)
		}
		metrics.JobDuration.WithLabelValues(jobName).Observe(time.Since(start).Seconds())
		if completed {
			return
		}

		metrics.JobRunsTotal.WithLabelValues(jobName, "failed").Inc()
		msg := "unknown failure"
		if err != nil {
			msg = err.Error()
		}
		if failErr := l.Fail(ctx, logID, msg); failErr != nil {
			log.Error().Err(failErr).Str("job", jobName).Msg("Failed to record job failure")
		}
		log.Error().Err(err).Str("job", jobName).Dur("elapsed", time.Since(start)).Msg("Job failed")
	}()

	count, err := body(ctx)
	if err != nil {
		return err
	}

	if err = l.Complete(ctx, logID, count); err != nil {
		return fmt.Errorf("failed to complete refresh log for %s: %w", jobName, err)
	}
	completed = true

	metrics.JobRunsTotal.WithLabelValues(jobName, "success").Inc()
	log.Info().
		Str("job", jobName).
		Int("players_updated", count).
		Dur("elapsed", time.Since(start)).
		Msg("Job completed")
	return nil
}
