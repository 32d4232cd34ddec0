package models

import (
	"database/sql"
	"time"
)

// Refresh log statuses
const (
	RefreshStarted   = "started"
	RefreshCompleted = "completed"
	RefreshFailed    = "failed"
)

// MaxErrorMessageLen bounds error text stored in the refresh log
const MaxErrorMessageLen = 2000

// RefreshLogEntry is one row of the data_refresh_log audit table,
// recording a single job invocation's lifecycle.
type RefreshLogEntry struct {
	ID             int            `db:"id"`
	JobName        string         `db:"job_name"`
	Status         string         `db:"status"`
	PlayersUpdated sql.NullInt32  `db:"players_updated"`
	ErrorMessage   sql.NullString `db:"error_message"`
	StartedAt      time.Time      `db:"started_at"`
	CompletedAt    sql.NullTime   `db:"completed_at"`
}
