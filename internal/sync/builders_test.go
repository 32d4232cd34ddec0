package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
)

func TestBuildPlayers(t *testing.T) {
	headers := []string{
		"PERSON_ID", "PLAYER_FIRST_NAME", "PLAYER_LAST_NAME", "PLAYER_SLUG",
		"TEAM_ID", "TEAM_ABBREVIATION", "TEAM_NAME", "POSITION",
	}
	index := client.NewTable(headers, [][]any{
		{float64(201939), "Stephen", "Curry", "stephen-curry", float64(1610612744), "GSW", "Warriors", "G"},
		// Repeated listing, must be dropped
		{float64(201939), "Stephen", "Curry", "stephen-curry", float64(1610612744), "GSW", "Warriors", "G"},
		// No API slug, falls back to the generated one
		{float64(1630162), "Anthony", "Edwards", nil, float64(1610612750), "MIN", "Timberwolves", "G"},
		// No player ID
		{nil, "Ghost", "Row", nil, nil, nil, nil, nil},
	})
	mpg := map[int]float64{201939: 32.7, 1630162: 12.4}
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	players := buildPlayers(index, mpg, now)
	require.Len(t, players, 2)

	curry := players[0]
	assert.Equal(t, 201939, curry.NBAPlayerID)
	assert.Equal(t, "Stephen Curry", curry.FullName)
	assert.Equal(t, "stephen-curry", curry.Slug)
	assert.Equal(t, models.Tier1, curry.Tier)
	assert.True(t, curry.IsActive)
	assert.Equal(t, now, curry.LastFetched)
	assert.Contains(t, curry.HeadshotURL, "201939.png")

	edwards := players[1]
	assert.Equal(t, "anthony-edwards", edwards.Slug)
	assert.Equal(t, models.Tier2, edwards.Tier)
}

func TestBuildPlayers_MissingMinutesIsTier2(t *testing.T) {
	index := client.NewTable(
		[]string{"PERSON_ID", "PLAYER_FIRST_NAME", "PLAYER_LAST_NAME", "PLAYER_SLUG"},
		[][]any{{float64(999), "Two", "Way", "two-way"}},
	)
	players := buildPlayers(index, map[int]float64{}, time.Now())
	require.Len(t, players, 1)
	assert.Equal(t, models.Tier2, players[0].Tier)
}

func TestBuildSeasonLines(t *testing.T) {
	table := client.NewTable(
		[]string{"PLAYER_ID", "GP", "GS", "MIN", "PTS", "REB", "AST", "FG_PCT"},
		[][]any{
			{float64(201939), float64(74), float64(74), 32.7, 26.44, 4.5, 5.1, 0.45},
			// Tier 2 player, filtered out
			{float64(999), float64(60), float64(2), 11.0, 4.2, 1.1, 0.8, 0.41},
			{nil, float64(1), nil, nil, nil, nil, nil, nil},
		},
	)
	tier1 := map[int]bool{201939: true}

	lines := buildSeasonLines(table, tier1, "2024-25")
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, 201939, l.NBAPlayerID)
	assert.Equal(t, "2024-25", l.Season)
	assert.Equal(t, models.SeasonTypeRegular, l.SeasonType)
	require.True(t, l.GamesPlayed.Valid)
	assert.EqualValues(t, 74, l.GamesPlayed.Int32)
	require.True(t, l.PointsPerGame.Valid)
	assert.Equal(t, 26.44, l.PointsPerGame.Float64)
}

func TestDistinctPlayers(t *testing.T) {
	lines := []*models.SeasonStatLine{
		{NBAPlayerID: 1, Season: "2024-25"},
		{NBAPlayerID: 1, Season: "2023-24"},
		{NBAPlayerID: 2, Season: "2024-25"},
	}
	assert.Equal(t, 2, distinctPlayers(lines))
	assert.Equal(t, 0, distinctPlayers(nil))
}

func advancedHeaders() []string {
	return []string{
		"PLAYER_ID", "MIN", "OFF_RATING", "DEF_RATING", "NET_RATING",
		"TS_PCT", "EFG_PCT", "PACE", "USG_PCT", "AST_PCT", "REB_PCT", "TM_TOV_PCT",
	}
}

func advancedRow(id, minutes, ts, usg float64) []any {
	return []any{
		id, minutes, 118.34, 110.91, 7.43,
		ts, 0.58, 99.12, usg, 0.25, 0.08, 0.11,
	}
}

func TestBuildAdvancedRecords(t *testing.T) {
	advanced := client.NewTable(advancedHeaders(), [][]any{
		advancedRow(201939, 32.7, 0.6543, 0.312),
		// Not Tier 1, dropped
		advancedRow(999, 30.0, 0.5, 0.2),
	})
	base := client.NewTable(
		[]string{"PLAYER_ID", "FG3A", "FGA", "FTA"},
		[][]any{{float64(201939), 11.2, 19.6, 5.0}},
	)
	tier1 := map[int]bool{201939: true}

	records := buildAdvancedRecords(advanced, base, tier1, "2024-25")
	require.Len(t, records, 1)

	l := records[0].line
	assert.Equal(t, 201939, l.NBAPlayerID)
	// Ratings keep one decimal
	require.True(t, l.OffRating.Valid)
	assert.Equal(t, 118.3, l.OffRating.Float64)
	// Shooting efficiency keeps three
	require.True(t, l.TSPct.Valid)
	assert.Equal(t, 0.654, l.TSPct.Float64)
	// Usage arrives as a fraction and is stored as a percentage
	require.True(t, l.UsgPct.Valid)
	assert.Equal(t, 31.2, l.UsgPct.Float64)
	require.True(t, l.TovPct.Valid)
	assert.Equal(t, 11.0, l.TovPct.Float64)
	// Attempt rates derive from the Base volumes
	require.True(t, l.ThreePAr.Valid)
	assert.Equal(t, 0.571, l.ThreePAr.Float64)
	require.True(t, l.FTr.Valid)
	assert.Equal(t, 0.255, l.FTr.Float64)
	// Basketball-Reference metrics wait for the scrape job
	assert.False(t, l.PER.Valid)
	assert.False(t, l.WS.Valid)

	require.NotNil(t, records[0].mpg)
	assert.Equal(t, 32.7, *records[0].mpg)
}

func TestBuildAdvancedRecords_NoVolumesLeavesRatesNull(t *testing.T) {
	advanced := client.NewTable(advancedHeaders(), [][]any{
		advancedRow(201939, 32.7, 0.6, 0.3),
	})
	base := client.NewTable([]string{"PLAYER_ID", "FG3A", "FGA", "FTA"}, nil)

	records := buildAdvancedRecords(advanced, base, map[int]bool{201939: true}, "2024-25")
	require.Len(t, records, 1)
	assert.False(t, records[0].line.ThreePAr.Valid)
	assert.False(t, records[0].line.FTr.Valid)
}

func TestApplyInlinePercentiles(t *testing.T) {
	minutes := func(m float64) *float64 { return &m }

	// Eleven qualified players clear the minimum pool size
	var records []advRecord
	for i := 0; i < 11; i++ {
		line := &models.AdvancedStatLine{NBAPlayerID: 100 + i}
		line.TSPct.Valid = true
		line.TSPct.Float64 = 0.50 + float64(i)*0.01
		line.UsgPct.Valid = true
		line.UsgPct.Float64 = 15 + float64(i)
		records = append(records, advRecord{line: line, mpg: minutes(25)})
	}
	// Bench player stays out of the pool and gets no rank
	bench := &models.AdvancedStatLine{NBAPlayerID: 999}
	bench.TSPct.Valid = true
	bench.TSPct.Float64 = 0.70
	records = append(records, advRecord{line: bench, mpg: minutes(10)})

	applyInlinePercentiles(records)

	assert.False(t, bench.TSPctile.Valid)
	lowest := records[0].line
	require.True(t, lowest.TSPctile.Valid)
	assert.Equal(t, 0.0, lowest.TSPctile.Float64)
	highest := records[10].line
	require.True(t, highest.TSPctile.Valid)
	assert.Equal(t, 90.9, highest.TSPctile.Float64)
	assert.Equal(t, 90.9, highest.UsgPctile.Float64)
}

func TestApplyInlinePercentiles_SmallPoolSkipsRanks(t *testing.T) {
	line := &models.AdvancedStatLine{NBAPlayerID: 1}
	line.TSPct.Valid = true
	line.TSPct.Float64 = 0.6
	m := 30.0
	records := []advRecord{{line: line, mpg: &m}}

	applyInlinePercentiles(records)
	assert.False(t, line.TSPctile.Valid)
	assert.False(t, line.UsgPctile.Valid)
}

func TestBuildGameLogEntries(t *testing.T) {
	headers := []string{"PLAYER_ID", "GAME_ID", "GAME_DATE", "MATCHUP", "WL", "MIN", "PTS", "FG_PCT"}
	table := client.NewTable(headers, [][]any{
		{float64(201939), "0022400567", "2025-01-15T00:00:00", "GSW vs. LAL", "W", float64(34), float64(31), 0.5217},
		// Missing game ID, dropped
		{float64(201939), nil, "2025-01-13T00:00:00", "GSW @ PHX", "L", float64(30), float64(18), 0.4},
		// Tier 2, dropped
		{float64(999), "0022400568", "2025-01-15T00:00:00", "MIN vs. DAL", "W", float64(10), float64(4), 0.5},
	})
	tier1 := map[int]bool{201939: true}

	entries := buildGameLogEntries(table, tier1, "2024-25")
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "0022400567", e.GameID)
	require.True(t, e.GameDate.Valid)
	assert.Equal(t, "2025-01-15", e.GameDate.String)
	assert.EqualValues(t, 31, e.Points.Int32)
	assert.Equal(t, 0.522, e.FGPct.Float64)
}

func shotHeaders() []string {
	return []string{
		"GAME_ID", "GAME_DATE", "LOC_X", "LOC_Y", "SHOT_MADE_FLAG",
		"PERIOD", "SHOT_DISTANCE", "ACTION_TYPE", "SHOT_ZONE_BASIC", "HTM", "VTM",
	}
}

func TestBuildShotAttempts(t *testing.T) {
	table := client.NewTable(shotHeaders(), [][]any{
		{"0022400567", "20250115", float64(-118), float64(240), float64(1),
			float64(2), float64(26), "Jump Shot", "Above the Break 3", "GSW", "LAL"},
		{"0022400567", "20250115", float64(5), float64(10), float64(0),
			float64(4), float64(1), "Layup", "Restricted Area", "gsw", "LAL"},
		// Missing coordinates, dropped
		{"0022400568", "20250113", nil, float64(100), float64(1),
			float64(1), float64(15), "Jump Shot", "Mid-Range", "PHX", "GSW"},
	})

	shots := buildShotAttempts(table, 201939, "2024-25", "GSW")
	require.Len(t, shots, 2)

	three := shots[0]
	assert.Equal(t, 201939, three.NBAPlayerID)
	assert.Equal(t, "2025-01-15", three.GameDate)
	assert.Equal(t, -118, three.LocX)
	assert.True(t, three.ShotMade)
	require.True(t, three.HomeAway.Valid)
	assert.Equal(t, "H", three.HomeAway.String)
	assert.Equal(t, "LAL", three.OpponentTeam.String)

	layup := shots[1]
	assert.False(t, layup.ShotMade)
	// Team matching ignores case
	assert.Equal(t, "H", layup.HomeAway.String)
}

func TestBuildShotAttempts_AwayAndUnknownTeam(t *testing.T) {
	table := client.NewTable(shotHeaders(), [][]any{
		{"0022400570", "20250110", float64(0), float64(50), float64(1),
			float64(1), float64(5), "Layup", "Paint", "BOS", "GSW"},
	})

	away := buildShotAttempts(table, 201939, "2024-25", "GSW")
	require.Len(t, away, 1)
	assert.Equal(t, "A", away[0].HomeAway.String)
	assert.Equal(t, "BOS", away[0].OpponentTeam.String)

	// A traded player's old games match neither team
	traded := buildShotAttempts(table, 201939, "2024-25", "DAL")
	require.Len(t, traded, 1)
	assert.False(t, traded[0].HomeAway.Valid)
	assert.False(t, traded[0].OpponentTeam.Valid)
}
