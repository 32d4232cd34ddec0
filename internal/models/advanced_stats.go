package models

import (
	"database/sql"
	"time"
)

// AdvancedStatLine represents advanced metrics for one player-season.
// Keyed by (nba_player_id, season, season_type).
//
// Two sources feed this table: stats.nba.com bulk measures (ratings, TS%,
// USG%, derived rates) and Basketball-Reference (PER, Win Shares, BPM,
// VORP). The BBRef columns are written as explicit NULLs by the
// stats.nba.com job so consumers can distinguish "not yet scraped" from
// "schema does not carry this".
type AdvancedStatLine struct {
	ID          int    `db:"id"`
	NBAPlayerID int    `db:"nba_player_id"`
	Season      string `db:"season"`
	SeasonType  string `db:"season_type"`

	// From stats.nba.com Advanced measure
	OffRating sql.NullFloat64 `db:"ortg"`
	DefRating sql.NullFloat64 `db:"drtg"`
	NetRating sql.NullFloat64 `db:"net_rtg"`
	TSPct     sql.NullFloat64 `db:"ts_pct"`  // fraction, e.g. 0.623
	EFGPct    sql.NullFloat64 `db:"efg_pct"` // fraction
	Pace      sql.NullFloat64 `db:"pace"`

	// Fraction-sourced, stored as whole percents (0-100)
	UsgPct sql.NullFloat64 `db:"usg_pct"`
	AstPct sql.NullFloat64 `db:"ast_pct"`
	TrbPct sql.NullFloat64 `db:"trb_pct"`
	TovPct sql.NullFloat64 `db:"tov_pct"`

	// Derived from Base measure volumes
	ThreePAr sql.NullFloat64 `db:"three_par"` // FG3A / FGA
	FTr      sql.NullFloat64 `db:"ftr"`       // FTA / FGA

	// Basketball-Reference metrics
	PER  sql.NullFloat64 `db:"per"`
	OWS  sql.NullFloat64 `db:"ows"`
	DWS  sql.NullFloat64 `db:"dws"`
	WS   sql.NullFloat64 `db:"ws"`
	WS48 sql.NullFloat64 `db:"ws_48"`
	OBPM sql.NullFloat64 `db:"obpm"`
	DBPM sql.NullFloat64 `db:"dbpm"`
	BPM  sql.NullFloat64 `db:"bpm"`
	VORP sql.NullFloat64 `db:"vorp"`

	// Percentile ranks, 0-100. Each column is computed from a single
	// source's pool only.
	PERPctile sql.NullFloat64 `db:"per_pctile"`
	TSPctile  sql.NullFloat64 `db:"ts_pctile"`
	UsgPctile sql.NullFloat64 `db:"usg_pctile"`
	WSPctile  sql.NullFloat64 `db:"ws_pctile"`
	BPMPctile sql.NullFloat64 `db:"bpm_pctile"`

	LastUpdated time.Time `db:"last_updated"`
}
