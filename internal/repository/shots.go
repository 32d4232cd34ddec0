package repository

import (
	"context"
	"fmt"

	"courtiq/pipeline/internal/models"
)

// ShotRepository handles shot chart rows
type ShotRepository struct {
	db *Database
}

var shotUpsert = UpsertSpec{
	Table: "player_shots",
	Columns: []string{
		"nba_player_id", "game_id", "game_date", "season",
		"period", "minutes_remaining", "seconds_remaining",
		"action_type", "shot_type", "shot_zone_basic", "shot_zone_area",
		"shot_zone_range", "shot_distance",
		"loc_x", "loc_y", "shot_made",
		"opponent_team", "home_away", "game_result",
	},
	ConflictKey: []string{
		"nba_player_id", "game_id", "loc_x", "loc_y",
		"period", "minutes_remaining", "seconds_remaining",
	},
	BatchSize: 100,
}

// Upsert writes shot attempts in chunks. Returns rows applied.
func (r *ShotRepository) Upsert(ctx context.Context, shots []*models.ShotAttempt) int {
	rows := make([][]any, 0, len(shots))
	for _, s := range shots {
		rows = append(rows, []any{
			s.NBAPlayerID, s.GameID, s.GameDate, s.Season,
			s.Period, s.MinutesRemaining, s.SecondsRemaining,
			s.ActionType, s.ShotType, s.ShotZoneBasic, s.ShotZoneArea,
			s.ShotZoneRange, s.ShotDistance,
			s.LocX, s.LocY, s.ShotMade,
			s.OpponentTeam, s.HomeAway, s.GameResult,
		})
	}
	return shotUpsert.Apply(ctx, r.db.Pool, rows)
}

// PlayerIDsWithShots returns the set of players that already have at
// least one shot row for a season. Used to resume interrupted syncs.
func (r *ShotRepository) PlayerIDsWithShots(ctx context.Context, season string) (map[int]bool, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT nba_player_id FROM player_shots
		WHERE season = $1`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query players with shots: %w", err)
	}
	defer rows.Close()

	ids := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CountByPlayerAndSeason returns how many shot rows exist for a player
func (r *ShotRepository) CountByPlayerAndSeason(ctx context.Context, nbaPlayerID int, season string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM player_shots
		WHERE nba_player_id = $1 AND season = $2`, nbaPlayerID, season).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count shots for player %d: %w", nbaPlayerID, err)
	}
	return count, nil
}
