package models

import "database/sql"

// ShotAttempt represents one shot attempt with court coordinates.
// Keyed by the composite (nba_player_id, game_id, loc_x, loc_y, period,
// minutes_remaining, seconds_remaining). The endpoint never returns two
// shots by one player at the same spot and clock reading, so collisions
// are dropped rather than deduplicated.
type ShotAttempt struct {
	ID          int    `db:"id"`
	NBAPlayerID int    `db:"nba_player_id"`
	GameID      string `db:"game_id"`
	GameDate    string `db:"game_date"` // YYYY-MM-DD
	Season      string `db:"season"`

	Period           sql.NullInt32 `db:"period"`
	MinutesRemaining sql.NullInt32 `db:"minutes_remaining"`
	SecondsRemaining sql.NullInt32 `db:"seconds_remaining"`

	ActionType    sql.NullString `db:"action_type"`
	ShotType      sql.NullString `db:"shot_type"`
	ShotZoneBasic sql.NullString `db:"shot_zone_basic"`
	ShotZoneArea  sql.NullString `db:"shot_zone_area"`
	ShotZoneRange sql.NullString `db:"shot_zone_range"`
	ShotDistance  sql.NullInt32  `db:"shot_distance"`

	LocX     int  `db:"loc_x"`
	LocY     int  `db:"loc_y"`
	ShotMade bool `db:"shot_made"`

	OpponentTeam sql.NullString `db:"opponent_team"`
	HomeAway     sql.NullString `db:"home_away"` // "H" or "A"
	GameResult   sql.NullString `db:"game_result"`
}
