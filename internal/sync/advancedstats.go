package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
	"courtiq/pipeline/internal/stats"
)

// qualifyingMPG gates the inline percentile pool: only players logging
// starter-level minutes are compared against each other.
const qualifyingMPG = 20.0

// advRecord pairs a stat line with its transient per-game minutes. The
// minutes qualify a player for the percentile pool but are not a column
// of the advanced stats table.
type advRecord struct {
	line *models.AdvancedStatLine
	mpg  *float64
}

// SyncAdvancedStats refreshes advanced metrics for active Tier 1
// players across the configured season window. Each season takes two
// bulk calls: the Advanced measure for ratings and the Base measure for
// the attempt volumes behind 3PAr and FTr. TS% and USG% percentiles are
// computed inline per season; Basketball-Reference columns are written
// as NULL and filled by the scrape job.
func (s *Syncer) SyncAdvancedStats(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobAdvancedStats, func(ctx context.Context) (int, error) {
		seasons := models.Seasons(s.now(), s.cfg.NumSeasons)
		log.Info().Strs("seasons", seasons).Msg("Syncing advanced stats")

		tier1, err := s.tier1IDs(ctx)
		if err != nil {
			return 0, err
		}
		if len(tier1) == 0 {
			return 0, fmt.Errorf("no Tier 1 players found in database")
		}

		var all []*models.AdvancedStatLine
		processed := 0
		for _, season := range seasons {
			lines, err := s.fetchAdvancedSeason(ctx, season, tier1)
			if err != nil {
				log.Error().Err(err).Str("season", season).Msg("Failed to process season, skipping")
				continue
			}
			if len(lines) == 0 {
				log.Warn().Str("season", season).Msg("No advanced data for season, skipping")
				continue
			}
			log.Info().Str("season", season).Int("records", len(lines)).Msg("Built advanced stat records")
			all = append(all, lines...)
			processed++
		}

		log.Info().
			Int("seasons_processed", processed).
			Int("total_records", len(all)).
			Msg("Advanced fetch pass done")

		if len(all) > 0 {
			upserted := s.db.AdvancedStats.Upsert(ctx, all)
			log.Info().Int("upserted", upserted).Msg("Upserted advanced stat records")
		} else {
			log.Warn().Msg("No advanced stat records to upsert")
		}

		seen := make(map[int]bool, len(all))
		for _, l := range all {
			seen[l.NBAPlayerID] = true
		}
		return len(seen), nil
	})
}

func (s *Syncer) fetchAdvancedSeason(ctx context.Context, season string, tier1 map[int]bool) ([]*models.AdvancedStatLine, error) {
	advanced, err := s.nba.LeagueDashPlayerStats(ctx, season, client.MeasureAdvanced)
	if err != nil {
		return nil, err
	}
	if advanced.Len() == 0 {
		return nil, nil
	}
	base, err := s.nba.LeagueDashPlayerStats(ctx, season, client.MeasureBase)
	if err != nil {
		return nil, err
	}

	records := buildAdvancedRecords(advanced, base, tier1, season)
	applyInlinePercentiles(records)

	lines := make([]*models.AdvancedStatLine, len(records))
	for i, r := range records {
		lines[i] = r.line
	}
	return lines, nil
}

// buildAdvancedRecords left-joins Base attempt volumes onto the
// Advanced table and keeps only Tier 1 players
func buildAdvancedRecords(advanced, base *client.Table, tier1 map[int]bool, season string) []advRecord {
	type volumes struct{ fg3a, fga, fta *float64 }
	vols := make(map[int]volumes, base.Len())
	for i := 0; i < base.Len(); i++ {
		row := base.Row(i)
		if id := row.Int("PLAYER_ID"); id != nil {
			vols[*id] = volumes{
				fg3a: row.Float("FG3A", 3),
				fga:  row.Float("FGA", 3),
				fta:  row.Float("FTA", 3),
			}
		}
	}

	var records []advRecord
	for i := 0; i < advanced.Len(); i++ {
		row := advanced.Row(i)
		id := row.Int("PLAYER_ID")
		if id == nil || !tier1[*id] {
			continue
		}

		line := &models.AdvancedStatLine{
			NBAPlayerID: *id,
			Season:      season,
			SeasonType:  models.SeasonTypeRegular,

			OffRating: nullFloat(row.Float("OFF_RATING", 1)),
			DefRating: nullFloat(row.Float("DEF_RATING", 1)),
			NetRating: nullFloat(row.Float("NET_RATING", 1)),
			TSPct:     nullFloat(row.Float("TS_PCT", 3)),
			EFGPct:    nullFloat(row.Float("EFG_PCT", 3)),
			Pace:      nullFloat(row.Float("PACE", 1)),

			UsgPct: nullFloat(client.FractionToPercent(row.Get("USG_PCT"))),
			AstPct: nullFloat(client.FractionToPercent(row.Get("AST_PCT"))),
			TrbPct: nullFloat(client.FractionToPercent(row.Get("REB_PCT"))),
			TovPct: nullFloat(client.FractionToPercent(row.Get("TM_TOV_PCT"))),

			// PER, Win Shares, BPM, VORP stay NULL here; see bbrefadvanced
		}

		if v, ok := vols[*id]; ok && v.fga != nil && *v.fga > 0 {
			line.ThreePAr = nullFloat(rate(v.fg3a, *v.fga))
			line.FTr = nullFloat(rate(v.fta, *v.fga))
		}

		records = append(records, advRecord{
			line: line,
			mpg:  row.Float("MIN", 1),
		})
	}
	return records
}

func rate(numerator *float64, fga float64) *float64 {
	n := 0.0
	if numerator != nil {
		n = *numerator
	}
	return client.Float(n/fga, 3)
}

// applyInlinePercentiles ranks TS% and USG% across players logging 20+
// minutes per game, one decimal place
func applyInlinePercentiles(records []advRecord) {
	var tsPool, usgPool []stats.Sample
	for _, r := range records {
		if r.mpg == nil || *r.mpg < qualifyingMPG {
			continue
		}
		if r.line.TSPct.Valid {
			tsPool = append(tsPool, stats.Sample{ID: r.line.NBAPlayerID, Value: r.line.TSPct.Float64})
		}
		if r.line.UsgPct.Valid {
			usgPool = append(usgPool, stats.Sample{ID: r.line.NBAPlayerID, Value: r.line.UsgPct.Float64})
		}
	}

	tsRanks := stats.Rank(tsPool, 1)
	usgRanks := stats.Rank(usgPool, 1)
	for _, r := range records {
		r.line.TSPctile = rankValue(tsRanks, r.line.NBAPlayerID)
		r.line.UsgPctile = rankValue(usgRanks, r.line.NBAPlayerID)
	}
}

func rankValue(ranks map[int]float64, id int) sql.NullFloat64 {
	v, ok := ranks[id]
	if !ok {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
