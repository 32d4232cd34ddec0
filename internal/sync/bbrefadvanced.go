package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/bbref"
	"courtiq/pipeline/internal/models"
)

// SyncBBRefAdvanced scrapes the season advanced table from
// Basketball-Reference and fills the metrics stats.nba.com does not
// publish (PER, Win Shares, BPM, VORP). Rows join to players by
// normalized name; both sides go through the same diacritic stripping
// so accented spellings on either source still match.
func (s *Syncer) SyncBBRefAdvanced(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobBBRefAdvanced, func(ctx context.Context) (int, error) {
		season := models.CurrentSeason(s.now())
		log.Info().Str("season", season).Msg("Scraping Basketball-Reference advanced stats")

		names, err := s.db.Players.ActiveNames(ctx)
		if err != nil {
			return 0, err
		}
		if len(names) == 0 {
			return 0, fmt.Errorf("no active players found in database")
		}

		byName := make(map[string]int, len(names))
		for id, name := range names {
			key := bbref.NormalizeName(name)
			if _, dup := byName[key]; dup {
				log.Warn().Str("name", name).Msg("Duplicate normalized player name, keeping first")
				continue
			}
			byName[key] = id
		}

		rows, err := s.bbref.FetchAdvanced(ctx, season)
		if err != nil {
			return 0, err
		}
		log.Info().Int("rows", len(rows)).Msg("Parsed advanced table")

		updated := 0
		unmatched := 0
		for _, row := range rows {
			id, ok := byName[row.Name]
			if !ok {
				unmatched++
				log.Debug().Str("name", row.Name).Msg("No active player matches scraped name")
				continue
			}

			line := &models.AdvancedStatLine{
				NBAPlayerID: id,
				Season:      season,
				SeasonType:  models.SeasonTypeRegular,
				PER:         nullFloat(row.PER),
				OWS:         nullFloat(row.OWS),
				DWS:         nullFloat(row.DWS),
				WS:          nullFloat(row.WS),
				WS48:        nullFloat(row.WS48),
				OBPM:        nullFloat(row.OBPM),
				DBPM:        nullFloat(row.DBPM),
				BPM:         nullFloat(row.BPM),
				VORP:        nullFloat(row.VORP),
			}

			ok, err := s.db.AdvancedStats.UpdateBBRefMetrics(ctx, line)
			if err != nil {
				log.Error().Err(err).Str("name", row.Name).Int("player", id).Msg("Failed to update bbref metrics")
				continue
			}
			if ok {
				updated++
			}
		}

		log.Info().
			Int("updated", updated).
			Int("unmatched", unmatched).
			Msg("Applied Basketball-Reference metrics")
		return updated, nil
	})
}
