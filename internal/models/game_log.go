package models

import "database/sql"

// GameLogEntry represents one player-game box score row.
// Keyed by (nba_player_id, game_id). Immutable once a game is complete,
// but re-upsertable for correction.
type GameLogEntry struct {
	ID          int    `db:"id"`
	NBAPlayerID int    `db:"nba_player_id"`
	Season      string `db:"season"`

	GameID   string         `db:"game_id"`
	GameDate sql.NullString `db:"game_date"` // YYYY-MM-DD
	Matchup  sql.NullString `db:"matchup"`
	WinLoss  sql.NullString `db:"wl"`

	Minutes   sql.NullInt32 `db:"min"`
	Points    sql.NullInt32 `db:"pts"`
	Rebounds  sql.NullInt32 `db:"reb"`
	Assists   sql.NullInt32 `db:"ast"`
	Steals    sql.NullInt32 `db:"stl"`
	Blocks    sql.NullInt32 `db:"blk"`
	Turnovers sql.NullInt32 `db:"tov"`

	FGM   sql.NullInt32   `db:"fgm"`
	FGA   sql.NullInt32   `db:"fga"`
	FGPct sql.NullFloat64 `db:"fg_pct"`
	FG3M  sql.NullInt32   `db:"fg3m"`
	FG3A  sql.NullInt32   `db:"fg3a"`
	FG3Pct sql.NullFloat64 `db:"fg3_pct"`
	FTM   sql.NullInt32   `db:"ftm"`
	FTA   sql.NullInt32   `db:"fta"`
	FTPct sql.NullFloat64 `db:"ft_pct"`

	OffReb    sql.NullInt32 `db:"oreb"`
	DefReb    sql.NullInt32 `db:"dreb"`
	Fouls     sql.NullInt32 `db:"pf"`
	PlusMinus sql.NullInt32 `db:"plus_minus"`
}
