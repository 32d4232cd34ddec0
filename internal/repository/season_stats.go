package repository

import (
	"context"
	"fmt"
	"time"

	"courtiq/pipeline/internal/models"
)

// SeasonStatsRepository handles per-game season averages
type SeasonStatsRepository struct {
	db *Database
}

var seasonStatsUpsert = UpsertSpec{
	Table: "player_season_stats",
	Columns: []string{
		"nba_player_id", "season", "season_type",
		"gp", "gs",
		"min_pg", "pts_pg", "reb_pg", "ast_pg", "stl_pg", "blk_pg", "tov_pg",
		"fgm_pg", "fga_pg", "fg_pct", "fg3m_pg", "fg3a_pg", "fg3_pct",
		"ftm_pg", "fta_pg", "ft_pct",
		"oreb_pg", "dreb_pg", "pf_pg", "plus_minus",
		"last_updated",
	},
	ConflictKey: []string{"nba_player_id", "season", "season_type"},
	BatchSize:   50,
}

// Upsert writes season stat lines in chunks. Returns rows applied.
func (r *SeasonStatsRepository) Upsert(ctx context.Context, lines []*models.SeasonStatLine) int {
	now := time.Now()
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{
			l.NBAPlayerID, l.Season, l.SeasonType,
			l.GamesPlayed, l.GamesStarted,
			l.MinutesPerGame, l.PointsPerGame, l.ReboundsPerGame, l.AssistsPerGame,
			l.StealsPerGame, l.BlocksPerGame, l.TurnoversPerGame,
			l.FGMPerGame, l.FGAPerGame, l.FGPct, l.FG3MPerGame, l.FG3APerGame, l.FG3Pct,
			l.FTMPerGame, l.FTAPerGame, l.FTPct,
			l.OffRebPerGame, l.DefRebPerGame, l.FoulsPerGame, l.PlusMinus,
			now,
		})
	}
	return seasonStatsUpsert.Apply(ctx, r.db.Pool, rows)
}

// GetByPlayerAndSeason fetches one stat line
func (r *SeasonStatsRepository) GetByPlayerAndSeason(ctx context.Context, nbaPlayerID int, season, seasonType string) (*models.SeasonStatLine, error) {
	l := &models.SeasonStatLine{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, nba_player_id, season, season_type, gp, gs,
		       min_pg, pts_pg, reb_pg, ast_pg, stl_pg, blk_pg, tov_pg,
		       fgm_pg, fga_pg, fg_pct, fg3m_pg, fg3a_pg, fg3_pct,
		       ftm_pg, fta_pg, ft_pct, oreb_pg, dreb_pg, pf_pg, plus_minus,
		       last_updated
		FROM player_season_stats
		WHERE nba_player_id = $1 AND season = $2 AND season_type = $3`,
		nbaPlayerID, season, seasonType).Scan(
		&l.ID, &l.NBAPlayerID, &l.Season, &l.SeasonType, &l.GamesPlayed, &l.GamesStarted,
		&l.MinutesPerGame, &l.PointsPerGame, &l.ReboundsPerGame, &l.AssistsPerGame,
		&l.StealsPerGame, &l.BlocksPerGame, &l.TurnoversPerGame,
		&l.FGMPerGame, &l.FGAPerGame, &l.FGPct, &l.FG3MPerGame, &l.FG3APerGame, &l.FG3Pct,
		&l.FTMPerGame, &l.FTAPerGame, &l.FTPct,
		&l.OffRebPerGame, &l.DefRebPerGame, &l.FoulsPerGame, &l.PlusMinus,
		&l.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to get season stats for player %d: %w", nbaPlayerID, err)
	}
	return l, nil
}
