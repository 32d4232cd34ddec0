package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsFixture = `{
	"resource": "leaguedashplayerstats",
	"resultSets": [
		{
			"name": "LeagueDashPlayerStats",
			"headers": ["PLAYER_ID", "PLAYER_NAME", "MIN", "TS_PCT"],
			"rowSet": [
				[201939, "Stephen Curry", 32.7, 0.656],
				[1629027, "Trae Young", 35.3, null]
			]
		}
	]
}`

func TestDecodeResultSet_ByName(t *testing.T) {
	table, err := decodeResultSet([]byte(statsFixture), "LeagueDashPlayerStats")
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	row := table.Row(0)
	id := row.Int("PLAYER_ID")
	require.NotNil(t, id)
	assert.Equal(t, 201939, *id)

	name := row.Str("PLAYER_NAME")
	require.NotNil(t, name)
	assert.Equal(t, "Stephen Curry", *name)

	ts := row.Float("TS_PCT", 3)
	require.NotNil(t, ts)
	assert.Equal(t, 0.656, *ts)
}

func TestDecodeResultSet_FallsBackToFirstSet(t *testing.T) {
	table, err := decodeResultSet([]byte(statsFixture), "NoSuchSet")
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestDecodeResultSet_NullAndMissingCells(t *testing.T) {
	table, err := decodeResultSet([]byte(statsFixture), "LeagueDashPlayerStats")
	require.NoError(t, err)

	row := table.Row(1)
	assert.Nil(t, row.Float("TS_PCT", 3))
	assert.Nil(t, row.Get("NO_SUCH_COLUMN"))
	assert.Nil(t, row.Int("NO_SUCH_COLUMN"))
}

func TestDecodeResultSet_Errors(t *testing.T) {
	_, err := decodeResultSet([]byte("not json"), "X")
	assert.Error(t, err)

	_, err = decodeResultSet([]byte(`{"resultSets": []}`), "X")
	assert.Error(t, err)
}

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"PLAYER_ID", "MIN"}, [][]any{{42.0, 20.0}})
	require.Equal(t, 1, table.Len())

	id := table.Row(0).Int("PLAYER_ID")
	require.NotNil(t, id)
	assert.Equal(t, 42, *id)
}
