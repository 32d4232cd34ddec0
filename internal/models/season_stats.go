package models

import (
	"database/sql"
	"time"
)

// SeasonStatLine represents per-game averages for one player-season.
// Keyed by (nba_player_id, season, season_type).
type SeasonStatLine struct {
	ID          int    `db:"id"`
	NBAPlayerID int    `db:"nba_player_id"`
	Season      string `db:"season"`
	SeasonType  string `db:"season_type"`

	GamesPlayed  sql.NullInt32 `db:"gp"`
	GamesStarted sql.NullInt32 `db:"gs"`

	MinutesPerGame sql.NullFloat64 `db:"min_pg"`
	PointsPerGame  sql.NullFloat64 `db:"pts_pg"`
	ReboundsPerGame sql.NullFloat64 `db:"reb_pg"`
	AssistsPerGame  sql.NullFloat64 `db:"ast_pg"`
	StealsPerGame   sql.NullFloat64 `db:"stl_pg"`
	BlocksPerGame   sql.NullFloat64 `db:"blk_pg"`
	TurnoversPerGame sql.NullFloat64 `db:"tov_pg"`

	FGMPerGame sql.NullFloat64 `db:"fgm_pg"`
	FGAPerGame sql.NullFloat64 `db:"fga_pg"`
	FGPct      sql.NullFloat64 `db:"fg_pct"`
	FG3MPerGame sql.NullFloat64 `db:"fg3m_pg"`
	FG3APerGame sql.NullFloat64 `db:"fg3a_pg"`
	FG3Pct      sql.NullFloat64 `db:"fg3_pct"`
	FTMPerGame  sql.NullFloat64 `db:"ftm_pg"`
	FTAPerGame  sql.NullFloat64 `db:"fta_pg"`
	FTPct       sql.NullFloat64 `db:"ft_pct"`

	OffRebPerGame sql.NullFloat64 `db:"oreb_pg"`
	DefRebPerGame sql.NullFloat64 `db:"dreb_pg"`
	FoulsPerGame  sql.NullFloat64 `db:"pf_pg"`
	PlusMinus     sql.NullFloat64 `db:"plus_minus"`

	LastUpdated time.Time `db:"last_updated"`
}
