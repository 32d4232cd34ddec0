package models

import (
	"fmt"
	"time"
)

// SeasonTypeRegular is the only season type the pipeline currently syncs
const SeasonTypeRegular = "Regular Season"

// CurrentSeason returns the NBA season string in 'YYYY-YY' format for the
// given date. The NBA season starts in October: before October we are still
// in the prior season.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.October {
		return formatSeason(year)
	}
	return formatSeason(year - 1)
}

// Seasons returns the current season plus the previous (n-1) seasons,
// most recent first.
func Seasons(now time.Time, n int) []string {
	startYear := now.Year()
	if now.Month() < time.October {
		startYear--
	}
	seasons := make([]string, 0, n)
	for i := 0; i < n; i++ {
		seasons = append(seasons, formatSeason(startYear-i))
	}
	return seasons
}

func formatSeason(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// SeasonEndYear converts '2024-25' to 2025, the year Basketball-Reference
// keys its season pages on.
func SeasonEndYear(season string) (int, error) {
	var startYear int
	if _, err := fmt.Sscanf(season, "%4d-", &startYear); err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", season, err)
	}
	return startYear + 1, nil
}
