package repository

import (
	"context"
	"fmt"

	"courtiq/pipeline/internal/models"
)

// GameLogRepository handles per-game box score rows
type GameLogRepository struct {
	db *Database
}

var gameLogUpsert = UpsertSpec{
	Table: "player_game_logs",
	Columns: []string{
		"nba_player_id", "season", "game_id", "game_date", "matchup", "wl",
		"min", "pts", "reb", "ast", "stl", "blk", "tov",
		"fgm", "fga", "fg_pct", "fg3m", "fg3a", "fg3_pct", "ftm", "fta", "ft_pct",
		"oreb", "dreb", "pf", "plus_minus",
	},
	ConflictKey: []string{"nba_player_id", "game_id"},
	BatchSize:   50,
}

// Upsert writes game log entries in chunks. Returns rows applied.
func (r *GameLogRepository) Upsert(ctx context.Context, entries []*models.GameLogEntry) int {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.NBAPlayerID, e.Season, e.GameID, e.GameDate, e.Matchup, e.WinLoss,
			e.Minutes, e.Points, e.Rebounds, e.Assists, e.Steals, e.Blocks, e.Turnovers,
			e.FGM, e.FGA, e.FGPct, e.FG3M, e.FG3A, e.FG3Pct, e.FTM, e.FTA, e.FTPct,
			e.OffReb, e.DefReb, e.Fouls, e.PlusMinus,
		})
	}
	return gameLogUpsert.Apply(ctx, r.db.Pool, rows)
}

// CountByPlayerAndSeason returns how many game rows exist for a player
func (r *GameLogRepository) CountByPlayerAndSeason(ctx context.Context, nbaPlayerID int, season string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM player_game_logs
		WHERE nba_player_id = $1 AND season = $2`, nbaPlayerID, season).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game logs for player %d: %w", nbaPlayerID, err)
	}
	return count, nil
}
