package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"courtiq/pipeline/internal/models"
)

// AdvancedStatsRepository handles advanced metrics from stats.nba.com
// and Basketball-Reference
type AdvancedStatsRepository struct {
	db *Database
}

var advancedStatsUpsert = UpsertSpec{
	Table: "player_advanced_stats",
	Columns: []string{
		"nba_player_id", "season", "season_type",
		"ortg", "drtg", "net_rtg", "ts_pct", "efg_pct", "pace",
		"usg_pct", "ast_pct", "trb_pct", "tov_pct",
		"three_par", "ftr",
		"per", "ows", "dws", "ws", "ws_48", "obpm", "dbpm", "bpm", "vorp",
		"ts_pctile", "usg_pctile",
		"last_updated",
	},
	ConflictKey: []string{"nba_player_id", "season", "season_type"},
	BatchSize:   50,
}

// Upsert writes advanced stat lines in chunks. The Basketball-Reference
// columns are part of the statement so absent metrics become NULL rather
// than stale. Returns rows applied.
func (r *AdvancedStatsRepository) Upsert(ctx context.Context, lines []*models.AdvancedStatLine) int {
	now := time.Now()
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{
			l.NBAPlayerID, l.Season, l.SeasonType,
			l.OffRating, l.DefRating, l.NetRating, l.TSPct, l.EFGPct, l.Pace,
			l.UsgPct, l.AstPct, l.TrbPct, l.TovPct,
			l.ThreePAr, l.FTr,
			l.PER, l.OWS, l.DWS, l.WS, l.WS48, l.OBPM, l.DBPM, l.BPM, l.VORP,
			l.TSPctile, l.UsgPctile,
			now,
		})
	}
	return advancedStatsUpsert.Apply(ctx, r.db.Pool, rows)
}

// UpdateBBRefMetrics overwrites the Basketball-Reference columns of one
// existing player-season row. Rows are never created here; a player with
// no stats.nba.com line has nothing to attach metrics to.
func (r *AdvancedStatsRepository) UpdateBBRefMetrics(ctx context.Context, l *models.AdvancedStatLine) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE player_advanced_stats
		SET per = $1, ows = $2, dws = $3, ws = $4, ws_48 = $5,
		    obpm = $6, dbpm = $7, bpm = $8, vorp = $9,
		    last_updated = NOW()
		WHERE nba_player_id = $10 AND season = $11 AND season_type = $12`,
		l.PER, l.OWS, l.DWS, l.WS, l.WS48,
		l.OBPM, l.DBPM, l.BPM, l.VORP,
		l.NBAPlayerID, l.Season, l.SeasonType)
	if err != nil {
		return false, fmt.Errorf("failed to update bbref metrics for player %d: %w", l.NBAPlayerID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Percentiles carries the five percentile ranks written by the
// percentile job. A nil field clears the column.
type Percentiles struct {
	PER sql.NullFloat64
	TS  sql.NullFloat64
	Usg sql.NullFloat64
	WS  sql.NullFloat64
	BPM sql.NullFloat64
}

// UpdatePercentiles overwrites all five percentile columns for one
// player-season row
func (r *AdvancedStatsRepository) UpdatePercentiles(ctx context.Context, nbaPlayerID int, season, seasonType string, p Percentiles) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE player_advanced_stats
		SET per_pctile = $1, ts_pctile = $2, usg_pctile = $3,
		    ws_pctile = $4, bpm_pctile = $5, last_updated = NOW()
		WHERE nba_player_id = $6 AND season = $7 AND season_type = $8`,
		p.PER, p.TS, p.Usg, p.WS, p.BPM,
		nbaPlayerID, season, seasonType)
	if err != nil {
		return fmt.Errorf("failed to update percentiles for player %d: %w", nbaPlayerID, err)
	}
	return nil
}

// ListTier1BySeason returns the advanced lines of active Tier 1 players
// for one season, carrying only the metrics percentile pools are built
// from
func (r *AdvancedStatsRepository) ListTier1BySeason(ctx context.Context, season, seasonType string) ([]*models.AdvancedStatLine, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT a.nba_player_id, a.season, a.season_type,
		       a.ts_pct, a.usg_pct, a.per, a.ws, a.bpm
		FROM player_advanced_stats a
		JOIN players p ON p.nba_player_id = a.nba_player_id
		WHERE p.is_active = true AND p.tier = $1
		  AND a.season = $2 AND a.season_type = $3`,
		models.Tier1, season, seasonType)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier 1 advanced stats: %w", err)
	}
	defer rows.Close()

	var lines []*models.AdvancedStatLine
	for rows.Next() {
		l := &models.AdvancedStatLine{}
		if err := rows.Scan(&l.NBAPlayerID, &l.Season, &l.SeasonType,
			&l.TSPct, &l.UsgPct, &l.PER, &l.WS, &l.BPM); err != nil {
			return nil, fmt.Errorf("failed to scan advanced stats: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetByPlayerAndSeason fetches one advanced stat line
func (r *AdvancedStatsRepository) GetByPlayerAndSeason(ctx context.Context, nbaPlayerID int, season, seasonType string) (*models.AdvancedStatLine, error) {
	l := &models.AdvancedStatLine{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, nba_player_id, season, season_type,
		       ortg, drtg, net_rtg, ts_pct, efg_pct, pace,
		       usg_pct, ast_pct, trb_pct, tov_pct, three_par, ftr,
		       per, ows, dws, ws, ws_48, obpm, dbpm, bpm, vorp,
		       per_pctile, ts_pctile, usg_pctile, ws_pctile, bpm_pctile,
		       last_updated
		FROM player_advanced_stats
		WHERE nba_player_id = $1 AND season = $2 AND season_type = $3`,
		nbaPlayerID, season, seasonType).Scan(
		&l.ID, &l.NBAPlayerID, &l.Season, &l.SeasonType,
		&l.OffRating, &l.DefRating, &l.NetRating, &l.TSPct, &l.EFGPct, &l.Pace,
		&l.UsgPct, &l.AstPct, &l.TrbPct, &l.TovPct, &l.ThreePAr, &l.FTr,
		&l.PER, &l.OWS, &l.DWS, &l.WS, &l.WS48, &l.OBPM, &l.DBPM, &l.BPM, &l.VORP,
		&l.PERPctile, &l.TSPctile, &l.UsgPctile, &l.WSPctile, &l.BPMPctile,
		&l.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to get advanced stats for player %d: %w", nbaPlayerID, err)
	}
	return l, nil
}
