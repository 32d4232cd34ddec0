package sync

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/models"
	"courtiq/pipeline/internal/repository"
	"courtiq/pipeline/internal/stats"
)

// SyncPercentiles recomputes the five percentile columns for every
// active Tier 1 player in the current season, purely from rows already
// in the datastore. Each stat ranks over the players carrying a value
// for it; a pool under the minimum size leaves that column NULL for
// everyone. Ranks are integers here, unlike the one-decimal inline
// ranks of the advanced sync.
func (s *Syncer) SyncPercentiles(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobPercentiles, func(ctx context.Context) (int, error) {
		season := models.CurrentSeason(s.now())
		log.Info().Str("season", season).Msg("Calculating percentiles")

		lines, err := s.db.AdvancedStats.ListTier1BySeason(ctx, season, models.SeasonTypeRegular)
		if err != nil {
			return 0, err
		}
		if len(lines) == 0 {
			log.Warn().Msg("No advanced stat rows found, nothing to compute")
			return 0, nil
		}
		log.Info().Int("players", len(lines)).Msg("Computing percentiles")

		perRanks := rankColumn(lines, func(l *models.AdvancedStatLine) sql.NullFloat64 { return l.PER }, "per")
		tsRanks := rankColumn(lines, func(l *models.AdvancedStatLine) sql.NullFloat64 { return l.TSPct }, "ts_pct")
		usgRanks := rankColumn(lines, func(l *models.AdvancedStatLine) sql.NullFloat64 { return l.UsgPct }, "usg_pct")
		wsRanks := rankColumn(lines, func(l *models.AdvancedStatLine) sql.NullFloat64 { return l.WS }, "ws")
		bpmRanks := rankColumn(lines, func(l *models.AdvancedStatLine) sql.NullFloat64 { return l.BPM }, "bpm")

		updated := 0
		for _, l := range lines {
			p := repository.Percentiles{
				PER: rankValue(perRanks, l.NBAPlayerID),
				TS:  rankValue(tsRanks, l.NBAPlayerID),
				Usg: rankValue(usgRanks, l.NBAPlayerID),
				WS:  rankValue(wsRanks, l.NBAPlayerID),
				BPM: rankValue(bpmRanks, l.NBAPlayerID),
			}
			if err := s.db.AdvancedStats.UpdatePercentiles(ctx, l.NBAPlayerID, season, models.SeasonTypeRegular, p); err != nil {
				log.Error().Err(err).Int("player", l.NBAPlayerID).Msg("Failed to update percentiles")
				continue
			}
			updated++
		}

		log.Info().Int("updated", updated).Msg("Updated percentile ranks")
		return updated, nil
	})
}

// rankColumn builds the presence-gated pool for one stat and ranks it
// at integer precision
func rankColumn(lines []*models.AdvancedStatLine, value func(*models.AdvancedStatLine) sql.NullFloat64, name string) map[int]float64 {
	var pool []stats.Sample
	for _, l := range lines {
		if v := value(l); v.Valid {
			pool = append(pool, stats.Sample{ID: l.NBAPlayerID, Value: v.Float64})
		}
	}

	ranks := stats.Rank(pool, 0)
	if ranks == nil {
		log.Warn().
			Str("stat", name).
			Int("values", len(pool)).
			Int("required", stats.MinQualifying).
			Msg("Too few values for percentiles, leaving column NULL")
	} else {
		log.Info().Str("stat", name).Int("players", len(pool)).Msg("Computed stat percentiles")
	}
	return ranks
}
