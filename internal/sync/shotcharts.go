package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
)

// ShotChartOptions controls one shot chart run. Zero value syncs the
// current season with resume enabled.
type ShotChartOptions struct {
	// Season overrides the current season, e.g. "2024-25"
	Season string
	// NoResume refetches every player even when shots already exist
	NoResume bool
}

// SyncShotCharts fetches shot-level data for every active Tier 1
// player, one endpoint call per player. The endpoint throttles
// aggressively, so requests pause between players and take a longer
// break after each batch of players. Interrupted runs resume: players
// that already have shots persisted for the season are skipped unless
// NoResume is set. The ledger records players processed.
func (s *Syncer) SyncShotCharts(ctx context.Context, opts ShotChartOptions) error {
	return runJob(ctx, s.db.RefreshLog, JobShotCharts, func(ctx context.Context) (int, error) {
		season := opts.Season
		if season == "" {
			season = models.CurrentSeason(s.now())
		}
		log.Info().Str("season", season).Bool("resume", !opts.NoResume).Msg("Syncing shot charts")

		players, err := s.db.Players.ActiveTier1Players(ctx)
		if err != nil {
			return 0, err
		}
		if len(players) == 0 {
			return 0, fmt.Errorf("no Tier 1 players found in database")
		}

		// The already-fetched set is computed once up front and carried
		// through the run; interleaved upserts must not grow it.
		fetched := map[int]bool{}
		if !opts.NoResume {
			fetched, err = s.db.Shots.PlayerIDsWithShots(ctx, season)
			if err != nil {
				log.Warn().Err(err).Msg("Could not check existing shots for resume, fetching all")
				fetched = map[int]bool{}
			} else if len(fetched) > 0 {
				log.Info().Int("players", len(fetched)).Msg("Resume: skipping already-fetched players")
			}
		}

		var remaining []*models.Player
		for _, p := range players {
			if !fetched[p.NBAPlayerID] {
				remaining = append(remaining, p)
			}
		}
		if len(remaining) == 0 {
			log.Info().Msg("All players already fetched for this season")
			return 0, nil
		}

		batchSize := s.cfg.ShotPlayerBatchSize
		totalBatches := (len(remaining) + batchSize - 1) / batchSize

		processed := 0
		failed := 0
		totalShots := 0
		for start := 0; start < len(remaining); start += batchSize {
			end := start + batchSize
			if end > len(remaining) {
				end = len(remaining)
			}
			batch := remaining[start:end]
			batchNum := start/batchSize + 1
			log.Info().
				Int("batch", batchNum).
				Int("total_batches", totalBatches).
				Int("players", len(batch)).
				Msg("Starting shot chart batch")

			for i, player := range batch {
				shots, err := s.fetchPlayerShots(ctx, player, season)
				if err != nil {
					failed++
					log.Error().Err(err).
						Str("player", player.FullName).
						Int("player_id", player.NBAPlayerID).
						Msg("Failed to fetch shot chart")
				} else {
					processed++
					totalShots += shots
				}

				if i < len(batch)-1 {
					if err := s.sleep(ctx, s.cfg.ShotPlayerDelay); err != nil {
						return processed, err
					}
				}
			}

			log.Info().
				Int("batch", batchNum).
				Int("processed", processed).
				Int("shots", totalShots).
				Int("failed", failed).
				Msg("Shot chart batch done")

			if batchNum < totalBatches {
				if err := s.sleep(ctx, s.cfg.ShotBatchDelay); err != nil {
					return processed, err
				}
			}
		}

		log.Info().
			Int("processed", processed).
			Int("failed", failed).
			Int("total_shots", totalShots).
			Msg("Shot chart sync done")
		return processed, nil
	})
}

// fetchPlayerShots pulls and persists one player's season of shots,
// returning how many rows were applied
func (s *Syncer) fetchPlayerShots(ctx context.Context, player *models.Player, season string) (int, error) {
	table, err := s.nba.ShotChartDetail(ctx, player.NBAPlayerID, season)
	if err != nil {
		return 0, err
	}
	if table.Len() == 0 {
		log.Info().Str("player", player.FullName).Msg("No shots for player")
		return 0, nil
	}

	teamAbbr := ""
	if player.TeamAbbr.Valid {
		teamAbbr = player.TeamAbbr.String
	}
	shots := buildShotAttempts(table, player.NBAPlayerID, season, teamAbbr)
	if len(shots) == 0 {
		log.Info().Str("player", player.FullName).Int("rows", table.Len()).
			Msg("All shot rows skipped for missing required fields")
		return 0, nil
	}

	upserted := s.db.Shots.Upsert(ctx, shots)
	log.Info().
		Str("player", player.FullName).
		Int("rows", table.Len()).
		Int("upserted", upserted).
		Msg("Upserted player shots")
	return upserted, nil
}

func buildShotAttempts(table *client.Table, nbaPlayerID int, season, teamAbbr string) []*models.ShotAttempt {
	var shots []*models.ShotAttempt
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)

		locX := row.Int("LOC_X")
		locY := row.Int("LOC_Y")
		gameID := row.Str("GAME_ID")
		made := row.Int("SHOT_MADE_FLAG")
		rawDate := row.Str("GAME_DATE")
		if locX == nil || locY == nil || gameID == nil || made == nil || rawDate == nil {
			continue
		}
		gameDate := client.NormalizeCompactDate(*rawDate)
		if gameDate == "" {
			continue
		}

		shot := &models.ShotAttempt{
			NBAPlayerID: nbaPlayerID,
			GameID:      *gameID,
			GameDate:    gameDate,
			Season:      season,

			Period:           nullInt(row.Int("PERIOD")),
			MinutesRemaining: nullInt(row.Int("MINUTES_REMAINING")),
			SecondsRemaining: nullInt(row.Int("SECONDS_REMAINING")),

			ActionType:    nullStr(row.Str("ACTION_TYPE")),
			ShotType:      nullStr(row.Str("SHOT_TYPE")),
			ShotZoneBasic: nullStr(row.Str("SHOT_ZONE_BASIC")),
			ShotZoneArea:  nullStr(row.Str("SHOT_ZONE_AREA")),
			ShotZoneRange: nullStr(row.Str("SHOT_ZONE_RANGE")),
			ShotDistance:  nullInt(row.Int("SHOT_DISTANCE")),

			LocX:     *locX,
			LocY:     *locY,
			ShotMade: *made != 0,
		}

		// Home or away and the opponent come from comparing the
		// player's current team to the game's home/visitor teams. A
		// mid-season trade leaves both null for pre-trade games.
		htm := row.Str("HTM")
		vtm := row.Str("VTM")
		if teamAbbr != "" && htm != nil && vtm != nil {
			switch strings.ToUpper(teamAbbr) {
			case strings.ToUpper(*htm):
				shot.HomeAway = nullStr(strPtr("H"))
				shot.OpponentTeam = nullStr(vtm)
			case strings.ToUpper(*vtm):
				shot.HomeAway = nullStr(strPtr("A"))
				shot.OpponentTeam = nullStr(htm)
			}
		}

		shots = append(shots, shot)
	}
	return shots
}

func strPtr(s string) *string { return &s }
