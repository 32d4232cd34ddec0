package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/client"
	"courtiq/pipeline/internal/models"
	"courtiq/pipeline/internal/stats"
)

// SyncPlayers refreshes the full player roster for the current season:
// PlayerIndex biographical data merged with per-game minutes for tier
// classification, followed by deactivation of players who dropped off
// the roster.
func (s *Syncer) SyncPlayers(ctx context.Context) error {
	return runJob(ctx, s.db.RefreshLog, JobPlayers, func(ctx context.Context) (int, error) {
		season := models.CurrentSeason(s.now())
		log.Info().Str("season", season).Msg("Syncing players")

		index, err := s.nba.PlayerIndex(ctx, season)
		if err != nil {
			return 0, err
		}
		if index.Len() == 0 {
			return 0, fmt.Errorf("player index returned no data for %s", season)
		}

		perGame, err := s.nba.LeagueDashPlayerStats(ctx, season, client.MeasureBase)
		if err != nil {
			return 0, err
		}

		players := buildPlayers(index, mpgLookup(perGame), s.now())
		if len(players) == 0 {
			return 0, fmt.Errorf("no player records built from API data")
		}

		tier1 := 0
		for _, p := range players {
			if p.Tier == models.Tier1 {
				tier1++
			}
		}
		log.Info().
			Int("total", len(players)).
			Int("tier1", tier1).
			Int("tier2", len(players)-tier1).
			Msg("Built player records")

		upserted := s.db.Players.Upsert(ctx, players)

		keep := make([]int, len(players))
		for i, p := range players {
			keep[i] = p.NBAPlayerID
		}
		deactivated, err := s.db.Players.Deactivate(ctx, keep)
		if err != nil {
			// Roster data is already written; stale active flags fix
			// themselves on the next run
			log.Warn().Err(err).Msg("Failed to deactivate departed players")
		} else if deactivated > 0 {
			log.Info().Int("count", deactivated).Msg("Deactivated departed players")
		}

		// Tier assignments may have moved players across the boundary
		s.cache.InvalidateTier1IDs(ctx)

		return upserted, nil
	})
}

// mpgLookup maps player ID to minutes per game from the Base per-game
// table. Players missing from the table get no entry and default to 0.
func mpgLookup(perGame *client.Table) map[int]float64 {
	mpg := make(map[int]float64, perGame.Len())
	for i := 0; i < perGame.Len(); i++ {
		row := perGame.Row(i)
		id := row.Int("PLAYER_ID")
		if id == nil {
			continue
		}
		if m := row.Float("MIN", 1); m != nil {
			mpg[*id] = *m
		}
	}
	return mpg
}

func buildPlayers(index *client.Table, mpg map[int]float64, now time.Time) []*models.Player {
	seen := make(map[int]bool, index.Len())
	players := make([]*models.Player, 0, index.Len())

	for i := 0; i < index.Len(); i++ {
		row := index.Row(i)

		id := row.Int("PERSON_ID")
		if id == nil {
			continue
		}
		// PlayerIndex repeats players listed on multiple teams
		if seen[*id] {
			continue
		}
		seen[*id] = true

		first := row.Str("PLAYER_FIRST_NAME")
		last := row.Str("PLAYER_LAST_NAME")
		fullName := strings.TrimSpace(deref(first) + " " + deref(last))
		if fullName == "" {
			continue
		}

		slug := deref(row.Str("PLAYER_SLUG"))
		if slug == "" {
			slug = models.MakeSlug(fullName)
		}

		p := &models.Player{
			NBAPlayerID: *id,
			FullName:    fullName,
			FirstName:   nullStr(first),
			LastName:    nullStr(last),
			Slug:        slug,

			TeamID:   nullInt(row.Int("TEAM_ID")),
			TeamAbbr: nullStr(row.Str("TEAM_ABBREVIATION")),
			TeamName: nullStr(row.Str("TEAM_NAME")),

			Position:     nullStr(row.Str("POSITION")),
			JerseyNumber: nullStr(row.Str("JERSEY_NUMBER")),
			Height:       nullStr(row.Str("HEIGHT")),
			Weight:       nullInt(row.Int("WEIGHT")),
			Country:      nullStr(row.Str("COUNTRY")),
			DraftYear:    nullInt(row.Int("DRAFT_YEAR")),
			DraftRound:   nullInt(row.Int("DRAFT_ROUND")),
			DraftNumber:  nullInt(row.Int("DRAFT_NUMBER")),
			HeadshotURL:  models.HeadshotURL(*id),

			IsActive:    true,
			Tier:        stats.ClassifyTier(mpg[*id]),
			LastFetched: now,
		}
		players = append(players, p)
	}
	return players
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
