package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"courtiq/pipeline/internal/models"
)

// RefreshLogRepository handles the data_refresh_log audit table
type RefreshLogRepository struct {
	db *Database
}

// Start inserts a new "started" row and returns its id
func (r *RefreshLogRepository) Start(ctx context.Context, jobName string) (int, error) {
	var id int
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO data_refresh_log (job_name, status, started_at)
		VALUES ($1, $2, NOW())
		RETURNING id`, jobName, models.RefreshStarted).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to start refresh log for %s: %w", jobName, err)
	}
	return id, nil
}

// Complete marks a run as completed with the number of records applied
func (r *RefreshLogRepository) Complete(ctx context.Context, id, playersUpdated int) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE data_refresh_log
		SET status = $1, players_updated = $2, completed_at = NOW()
		WHERE id = $3`, models.RefreshCompleted, playersUpdated, id)
	if err != nil {
		return fmt.Errorf("failed to complete refresh log %d: %w", id, err)
	}
	return nil
}

// Fail marks a run as failed. The error text is truncated so an
// oversized message never blocks the status transition.
func (r *RefreshLogRepository) Fail(ctx context.Context, id int, errMsg string) error {
	if len(errMsg) > models.MaxErrorMessageLen {
		errMsg = errMsg[:models.MaxErrorMessageLen]
	}
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE data_refresh_log
		SET status = $1, error_message = $2, completed_at = NOW()
		WHERE id = $3`, models.RefreshFailed, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark refresh log %d failed: %w", id, err)
	}
	return nil
}

// Get fetches one refresh log row
func (r *RefreshLogRepository) Get(ctx context.Context, id int) (*models.RefreshLogEntry, error) {
	e := &models.RefreshLogEntry{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, job_name, status, players_updated, error_message,
		       started_at, completed_at
		FROM data_refresh_log WHERE id = $1`, id).Scan(
		&e.ID, &e.JobName, &e.Status, &e.PlayersUpdated, &e.ErrorMessage,
		&e.StartedAt, &e.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh log %d: %w", id, err)
	}
	return e, nil
}

// LastCompleted returns the most recent completed run for a job, or nil
// when the job has never completed
func (r *RefreshLogRepository) LastCompleted(ctx context.Context, jobName string) (*models.RefreshLogEntry, error) {
	e := &models.RefreshLogEntry{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, job_name, status, players_updated, error_message,
		       started_at, completed_at
		FROM data_refresh_log
		WHERE job_name = $1 AND status = $2
		ORDER BY completed_at DESC LIMIT 1`, jobName, models.RefreshCompleted).Scan(
		&e.ID, &e.JobName, &e.Status, &e.PlayersUpdated, &e.ErrorMessage,
		&e.StartedAt, &e.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last completed run for %s: %w", jobName, err)
	}
	return e, nil
}
