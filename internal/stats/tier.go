// Package stats holds the pure computations of the pipeline: tier
// classification and percentile ranking. No I/O lives here.
package stats

// Tier1MPGThreshold is the minutes-per-game floor for Tier 1 status
const Tier1MPGThreshold = 20.0

// ClassifyTier assigns a player tier from minutes per game.
// Tier 1 (>= 20.0 MPG, boundary inclusive) gates the expensive per-player
// jobs (shot charts, game logs); everyone else is Tier 2. Players absent
// from the per-game source pass 0 and land in Tier 2. The classification
// is a pure function of the latest sample, with no hysteresis.
func ClassifyTier(minutesPerGame float64) int {
	if minutesPerGame >= Tier1MPGThreshold {
		return 1
	}
	return 2
}
