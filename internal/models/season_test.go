package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"october starts new season", time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"december mid season", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"spring still prior start year", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"september is offseason", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"century rollover format", time.Date(1999, 11, 1, 0, 0, 0, 0, time.UTC), "1999-00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentSeason(tc.now))
		})
	}
}

func TestSeasons(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-25", "2023-24", "2022-23", "2021-22"}, Seasons(now, 4))
	assert.Equal(t, []string{"2024-25"}, Seasons(now, 1))
}

func TestSeasonEndYear(t *testing.T) {
	year, err := SeasonEndYear("2024-25")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	_, err = SeasonEndYear("garbage")
	assert.Error(t, err)
}
