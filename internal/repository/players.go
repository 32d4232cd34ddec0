package repository

import (
	"context"
	"fmt"
	"time"

	"courtiq/pipeline/internal/models"
)

// PlayerRepository handles player-related database operations
type PlayerRepository struct {
	db *Database
}

var playerUpsert = UpsertSpec{
	Table: "players",
	Columns: []string{
		"nba_player_id", "full_name", "first_name", "last_name", "slug",
		"team_id", "team_abbr", "team_name",
		"position", "jersey_number", "height", "weight", "country",
		"draft_year", "draft_round", "draft_number", "headshot_url",
		"is_active", "tier", "last_fetched", "updated_at",
	},
	ConflictKey: []string{"nba_player_id"},
	BatchSize:   50,
}

// Upsert writes players in chunks, updating existing rows on
// nba_player_id conflicts. Returns the number of rows applied.
func (r *PlayerRepository) Upsert(ctx context.Context, players []*models.Player) int {
	now := time.Now()
	rows := make([][]any, 0, len(players))
	for _, p := range players {
		rows = append(rows, []any{
			p.NBAPlayerID, p.FullName, p.FirstName, p.LastName, p.Slug,
			p.TeamID, p.TeamAbbr, p.TeamName,
			p.Position, p.JerseyNumber, p.Height, p.Weight, p.Country,
			p.DraftYear, p.DraftRound, p.DraftNumber, p.HeadshotURL,
			p.IsActive, p.Tier, p.LastFetched, now,
		})
	}
	return playerUpsert.Apply(ctx, r.db.Pool, rows)
}

// Deactivate flags every active player whose nba_player_id is not in
// keep. Returns the number of rows flagged.
func (r *PlayerRepository) Deactivate(ctx context.Context, keep []int) (int, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE players
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true AND NOT (nba_player_id = ANY($1))`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate players: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ActiveTier1IDs returns the nba_player_id of every active Tier 1 player
func (r *PlayerRepository) ActiveTier1IDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT nba_player_id FROM players
		WHERE is_active = true AND tier = $1
		ORDER BY nba_player_id`, models.Tier1)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier 1 players: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActiveTier1Players returns id, name and team for every active Tier 1
// player, ordered by name for stable batch processing
func (r *PlayerRepository) ActiveTier1Players(ctx context.Context) ([]*models.Player, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT nba_player_id, full_name, team_abbr FROM players
		WHERE is_active = true AND tier = $1
		ORDER BY full_name`, models.Tier1)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier 1 players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		p := &models.Player{}
		if err := rows.Scan(&p.NBAPlayerID, &p.FullName, &p.TeamAbbr); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ActiveNames returns nba_player_id and full_name for every active
// player. Callers build their own name lookup on top.
func (r *PlayerRepository) ActiveNames(ctx context.Context) (map[int]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT nba_player_id, full_name FROM players
		WHERE is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active players: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan player name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// GetByNBAPlayerID fetches a single player row
func (r *PlayerRepository) GetByNBAPlayerID(ctx context.Context, nbaPlayerID int) (*models.Player, error) {
	p := &models.Player{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, nba_player_id, full_name, first_name, last_name, slug,
		       team_id, team_abbr, team_name, position, jersey_number,
		       height, weight, country, draft_year, draft_round, draft_number,
		       headshot_url, is_active, tier, last_fetched
		FROM players WHERE nba_player_id = $1`, nbaPlayerID).Scan(
		&p.ID, &p.NBAPlayerID, &p.FullName, &p.FirstName, &p.LastName, &p.Slug,
		&p.TeamID, &p.TeamAbbr, &p.TeamName, &p.Position, &p.JerseyNumber,
		&p.Height, &p.Weight, &p.Country, &p.DraftYear, &p.DraftRound, &p.DraftNumber,
		&p.HeadshotURL, &p.IsActive, &p.Tier, &p.LastFetched)
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", nbaPlayerID, err)
	}
	return p, nil
}
