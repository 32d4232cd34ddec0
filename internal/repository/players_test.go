package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtiq/pipeline/internal/models"
)

func testPlayer(nbaID int, name, slug string, tier int) *models.Player {
	return &models.Player{
		NBAPlayerID: nbaID,
		FullName:    name,
		Slug:        slug,
		TeamAbbr:    sql.NullString{String: "GSW", Valid: true},
		HeadshotURL: models.HeadshotURL(nbaID),
		IsActive:    true,
		Tier:        tier,
		LastFetched: time.Now(),
	}
}

func TestPlayerRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	player := testPlayer(900001, "Test Guard", "test-guard", models.Tier1)

	upserted := db.Players.Upsert(ctx, []*models.Player{player})
	assert.Equal(t, 1, upserted, "Should insert one player")

	retrieved, err := db.Players.GetByNBAPlayerID(ctx, player.NBAPlayerID)
	require.NoError(t, err, "Should retrieve inserted player")
	assert.Equal(t, "Test Guard", retrieved.FullName)
	assert.Equal(t, models.Tier1, retrieved.Tier)

	// Same conflict key updates in place
	player.FullName = "Test Guard II"
	player.Tier = models.Tier2
	upserted = db.Players.Upsert(ctx, []*models.Player{player})
	assert.Equal(t, 1, upserted, "Should update one player")

	updated, err := db.Players.GetByNBAPlayerID(ctx, player.NBAPlayerID)
	require.NoError(t, err)
	assert.Equal(t, "Test Guard II", updated.FullName)
	assert.Equal(t, models.Tier2, updated.Tier)
}

func TestPlayerRepository_Deactivate(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	stays := testPlayer(900010, "Stays Active", "stays-active", models.Tier1)
	leaves := testPlayer(900011, "Leaves League", "leaves-league", models.Tier2)
	db.Players.Upsert(ctx, []*models.Player{stays, leaves})

	_, err := db.Players.Deactivate(ctx, []int{stays.NBAPlayerID})
	require.NoError(t, err, "Should deactivate players off the roster")

	gone, err := db.Players.GetByNBAPlayerID(ctx, leaves.NBAPlayerID)
	require.NoError(t, err)
	assert.False(t, gone.IsActive, "Departed player should be inactive, not deleted")

	kept, err := db.Players.GetByNBAPlayerID(ctx, stays.NBAPlayerID)
	require.NoError(t, err)
	assert.True(t, kept.IsActive, "Rostered player should stay active")
}

func TestPlayerRepository_ActiveTier1IDs(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	t1 := testPlayer(900020, "Starter One", "starter-one", models.Tier1)
	t2 := testPlayer(900021, "Bench Two", "bench-two", models.Tier2)
	db.Players.Upsert(ctx, []*models.Player{t1, t2})

	ids, err := db.Players.ActiveTier1IDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, t1.NBAPlayerID)
	assert.NotContains(t, ids, t2.NBAPlayerID)
}
