package stats

import (
	"math"
	"sort"
)

// MinQualifying is the smallest pool that produces percentile ranks.
// Below it every rank in the pool is undefined for that statistic.
const MinQualifying = 10

// Sample is one (entity, value) pair in a percentile pool. Entities with
// an absent value must be excluded before building the pool.
type Sample struct {
	ID    int
	Value float64
}

// Rank computes the percentile rank of every sample in the pool:
// the share of pool values strictly below the sample's value, scaled to
// 0-100 and rounded to the given number of decimals (0 or 1). Equal
// values do not count as "below", so tied values share the same rank.
//
// Returns nil when the pool has fewer than MinQualifying samples; the
// caller is expected to log and persist NULLs.
func Rank(pool []Sample, decimals int) map[int]float64 {
	if len(pool) < MinQualifying {
		return nil
	}

	values := make([]float64, len(pool))
	for i, s := range pool {
		values[i] = s.Value
	}
	sort.Float64s(values)

	n := float64(len(values))
	ranks := make(map[int]float64, len(pool))
	for _, s := range pool {
		// First index >= value == count of values strictly below it
		below := sort.SearchFloat64s(values, s.Value)
		ranks[s.ID] = roundTo(float64(below)/n*100, decimals)
	}
	return ranks
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
