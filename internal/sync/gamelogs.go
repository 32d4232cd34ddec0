package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
)

// SyncGameLogs refreshes per-game box scores for active Tier 1 players.
// The whole season comes back in one bulk call; rows without a game ID
// are dropped. The ledger records the count of players touched, not raw
// rows.
func (s *Syncer) SyncGameLogs(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobGameLogs, func(ctx context.Context) (int, error) {
		season := models.CurrentSeason(s.now())
		log.Info().Str("season", season).Msg("Syncing game logs")

		tier1, err := s.tier1IDs(ctx)
		if err != nil {
			return 0, err
		}
		if len(tier1) == 0 {
			return 0, fmt.Errorf("no Tier 1 players found in database")
		}

		table, err := s.nba.PlayerGameLogs(ctx, season)
		if err != nil {
			return 0, err
		}

		entries := buildGameLogEntries(table, tier1, season)
		players := make(map[int]bool, len(entries))
		for _, e := range entries {
			players[e.NBAPlayerID] = true
		}
		log.Info().
			Int("rows", table.Len()).
			Int("records", len(entries)).
			Int("players", len(players)).
			Msg("Built game log records")

		if len(entries) > 0 {
			upserted := s.db.GameLogs.Upsert(ctx, entries)
			log.Info().Int("upserted", upserted).Msg("Upserted game log records")
		} else {
			log.Warn().Msg("No game log records to upsert")
		}

		return len(players), nil
	})
}

func buildGameLogEntries(table *client.Table, tier1 map[int]bool, season string) []*models.GameLogEntry {
	var entries []*models.GameLogEntry
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		id := row.Int("PLAYER_ID")
		if id == nil || !tier1[*id] {
			continue
		}

		gameID := row.Str("GAME_ID")
		if gameID == nil {
			continue
		}

		entry := &models.GameLogEntry{
			NBAPlayerID: *id,
			Season:      season,
			GameID:      *gameID,
			Matchup:     nullStr(row.Str("MATCHUP")),
			WinLoss:     nullStr(row.Str("WL")),

			Minutes:   nullInt(row.Int("MIN")),
			Points:    nullInt(row.Int("PTS")),
			Rebounds:  nullInt(row.Int("REB")),
			Assists:   nullInt(row.Int("AST")),
			Steals:    nullInt(row.Int("STL")),
			Blocks:    nullInt(row.Int("BLK")),
			Turnovers: nullInt(row.Int("TOV")),

			FGM:    nullInt(row.Int("FGM")),
			FGA:    nullInt(row.Int("FGA")),
			FGPct:  nullFloat(row.Float("FG_PCT", 3)),
			FG3M:   nullInt(row.Int("FG3M")),
			FG3A:   nullInt(row.Int("FG3A")),
			FG3Pct: nullFloat(row.Float("FG3_PCT", 3)),
			FTM:    nullInt(row.Int("FTM")),
			FTA:    nullInt(row.Int("FTA")),
			FTPct:  nullFloat(row.Float("FT_PCT", 3)),

			OffReb:    nullInt(row.Int("OREB")),
			DefReb:    nullInt(row.Int("DREB")),
			Fouls:     nullInt(row.Int("PF")),
			PlusMinus: nullInt(row.Int("PLUS_MINUS")),
		}

		if raw := row.Str("GAME_DATE"); raw != nil {
			normalized := client.NormalizeGameDate(*raw)
			entry.GameDate = nullStr(&normalized)
		}

		entries = append(entries, entry)
	}
	return entries
}
