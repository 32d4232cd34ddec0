// Package sync contains the pipeline jobs. Each job follows the same
// shape: read preconditions from the datastore, fetch from upstream,
// build records, upsert in chunks, and record the run in the refresh
// ledger.
package sync

import (
	"context"
	"database/sql"
	"time"

	"courtiq/pipeline/internal/bbref"
	"courtiq/pipeline/internal/cache"
	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/config"
	"courtiq/pipeline/internal/repository"
)

// Job names recorded in the refresh ledger
const (
	JobPlayers       = "fetch_players"
	JobSeasonStats   = "fetch_season_stats"
	JobAdvancedStats = "fetch_advanced_stats"
	JobBBRefAdvanced = "scrape_bbref_advanced"
	JobGameLogs      = "fetch_game_logs"
	JobShotCharts    = "fetch_shot_charts"
	JobPercentiles   = "calculate_percentiles"
)

// Syncer owns the dependencies shared by every job
type Syncer struct {
	db    *repository.Database
	nba   *client.Client
	bbref *bbref.Client
	cache *cache.Cache
	cfg   *config.Config

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Syncer. cache may be nil.
func New(db *repository.Database, nba *client.Client, bb *bbref.Client, c *cache.Cache, cfg *config.Config) *Syncer {
	return &Syncer{
		db:    db,
		nba:   nba,
		bbref: bb,
		cache: c,
		cfg:   cfg,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// tier1IDs returns the active Tier 1 player IDs, preferring the cache
func (s *Syncer) tier1IDs(ctx context.Context) (map[int]bool, error) {
	if ids := s.cache.GetTier1IDs(ctx); ids != nil {
		return idSet(ids), nil
	}
	ids, err := s.db.Players.ActiveTier1IDs(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetTier1IDs(ctx, ids)
	return idSet(ids), nil
}

func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// sql.Null* constructors for normalized pointer values

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullStr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
