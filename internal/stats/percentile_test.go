package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenPool(n int) []Sample {
	pool := make([]Sample, n)
	for i := range pool {
		pool[i] = Sample{ID: i + 1, Value: float64((i + 1) * 10)}
	}
	return pool
}

func TestRank_EvenlySpacedPool(t *testing.T) {
	// Pool {10, 20, ..., 100}: minimum ranks 0, maximum ranks 90
	ranks := Rank(evenPool(10), 0)
	require.NotNil(t, ranks)

	assert.Equal(t, 0.0, ranks[1])
	assert.Equal(t, 10.0, ranks[2])
	assert.Equal(t, 50.0, ranks[6])
	assert.Equal(t, 90.0, ranks[10])
}

func TestRank_PoolBelowMinimum(t *testing.T) {
	assert.Nil(t, Rank(evenPool(9), 0))
	assert.Nil(t, Rank(nil, 0))
	assert.Nil(t, Rank([]Sample{}, 1))
}

func TestRank_MinimumPoolSizeQualifies(t *testing.T) {
	ranks := Rank(evenPool(MinQualifying), 0)
	require.NotNil(t, ranks)
	assert.Len(t, ranks, MinQualifying)
}

func TestRank_Bounds(t *testing.T) {
	pool := []Sample{
		{1, 3.2}, {2, 7.7}, {3, 1.1}, {4, 9.4}, {5, 5.0},
		{6, 2.8}, {7, 8.1}, {8, 4.4}, {9, 6.3}, {10, 0.5}, {11, 9.9},
	}
	ranks := Rank(pool, 0)
	require.NotNil(t, ranks)

	for id, r := range ranks {
		assert.GreaterOrEqual(t, r, 0.0, "player %d", id)
		assert.LessOrEqual(t, r, 100.0, "player %d", id)
	}

	// Minimum is always 0; strict maximum is round(100*(n-1)/n)
	assert.Equal(t, 0.0, ranks[10])
	assert.Equal(t, 91.0, ranks[11]) // 10/11*100 = 90.9...
}

func TestRank_TiesCountStrictlyBelow(t *testing.T) {
	pool := []Sample{
		{1, 5}, {2, 5}, {3, 5}, {4, 1}, {5, 2},
		{6, 3}, {7, 4}, {8, 6}, {9, 7}, {10, 8},
	}
	ranks := Rank(pool, 0)
	require.NotNil(t, ranks)

	// Equal values share the same strictly-below count
	assert.Equal(t, ranks[1], ranks[2])
	assert.Equal(t, ranks[2], ranks[3])
	assert.Equal(t, 40.0, ranks[1]) // four values below the three 5s
}

func TestRank_Monotonic(t *testing.T) {
	pool := evenPool(25)
	ranks := Rank(pool, 0)
	require.NotNil(t, ranks)

	for i := 2; i <= 25; i++ {
		assert.Greater(t, ranks[i], ranks[i-1])
	}
}

func TestRank_OneDecimal(t *testing.T) {
	// 12 players: each step below is 1/12 = 8.333...%
	ranks := Rank(evenPool(12), 1)
	require.NotNil(t, ranks)

	assert.Equal(t, 0.0, ranks[1])
	assert.Equal(t, 8.3, ranks[2])
	assert.Equal(t, 16.7, ranks[3])
	assert.Equal(t, 91.7, ranks[12])
}
