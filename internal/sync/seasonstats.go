package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
)

// SyncSeasonStats refreshes per-game averages for active Tier 1 players
// across the configured season window, one bulk call per season. A
// season that fails to fetch is logged and skipped so the remaining
// seasons still sync.
func (s *Syncer) SyncSeasonStats(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobSeasonStats, func(ctx context.Context) (int, error) {
		seasons := models.Seasons(s.now(), s.cfg.NumSeasons)
		log.Info().Strs("seasons", seasons).Msg("Syncing season stats")

		tier1, err := s.tier1IDs(ctx)
		if err != nil {
			return 0, err
		}
		if len(tier1) == 0 {
			return 0, fmt.Errorf("no Tier 1 players found in database")
		}

		var all []*models.SeasonStatLine
		processed := 0
		for _, season := range seasons {
			table, err := s.nba.LeagueDashPlayerStats(ctx, season, client.MeasureBase)
			if err != nil {
				log.Error().Err(err).Str("season", season).Msg("Failed to fetch season, skipping")
				continue
			}
			if table.Len() == 0 {
				log.Warn().Str("season", season).Msg("No data for season, skipping")
				continue
			}

			lines := buildSeasonLines(table, tier1, season)
			log.Info().Str("season", season).Int("records", len(lines)).Msg("Built season stat records")
			all = append(all, lines...)
			processed++
		}

		log.Info().
			Int("seasons_processed", processed).
			Int("total_records", len(all)).
			Msg("Season fetch pass done")

		if len(all) > 0 {
			upserted := s.db.SeasonStats.Upsert(ctx, all)
			log.Info().Int("upserted", upserted).Msg("Upserted season stat records")
		} else {
			log.Warn().Msg("No season stat records to upsert")
		}

		return distinctPlayers(all), nil
	})
}

func buildSeasonLines(table *client.Table, tier1 map[int]bool, season string) []*models.SeasonStatLine {
	var lines []*models.SeasonStatLine
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		id := row.Int("PLAYER_ID")
		if id == nil || !tier1[*id] {
			continue
		}

		lines = append(lines, &models.SeasonStatLine{
			NBAPlayerID: *id,
			Season:      season,
			SeasonType:  models.SeasonTypeRegular,

			GamesPlayed:  nullInt(row.Int("GP")),
			GamesStarted: nullInt(row.Int("GS")),

			MinutesPerGame:   nullFloat(row.Float("MIN", 3)),
			PointsPerGame:    nullFloat(row.Float("PTS", 3)),
			ReboundsPerGame:  nullFloat(row.Float("REB", 3)),
			AssistsPerGame:   nullFloat(row.Float("AST", 3)),
			StealsPerGame:    nullFloat(row.Float("STL", 3)),
			BlocksPerGame:    nullFloat(row.Float("BLK", 3)),
			TurnoversPerGame: nullFloat(row.Float("TOV", 3)),

			FGMPerGame:  nullFloat(row.Float("FGM", 3)),
			FGAPerGame:  nullFloat(row.Float("FGA", 3)),
			FGPct:       nullFloat(row.Float("FG_PCT", 3)),
			FG3MPerGame: nullFloat(row.Float("FG3M", 3)),
			FG3APerGame: nullFloat(row.Float("FG3A", 3)),
			FG3Pct:      nullFloat(row.Float("FG3_PCT", 3)),
			FTMPerGame:  nullFloat(row.Float("FTM", 3)),
			FTAPerGame:  nullFloat(row.Float("FTA", 3)),
			FTPct:       nullFloat(row.Float("FT_PCT", 3)),

			OffRebPerGame: nullFloat(row.Float("OREB", 3)),
			DefRebPerGame: nullFloat(row.Float("DREB", 3)),
			FoulsPerGame:  nullFloat(row.Float("PF", 3)),
			PlusMinus:     nullFloat(row.Float("PLUS_MINUS", 3)),
		})
	}
	return lines
}

func distinctPlayers(lines []*models.SeasonStatLine) int {
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		seen[l.NBAPlayerID] = true
	}
	return len(seen)
}
