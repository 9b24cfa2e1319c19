package sentiment

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// Compound score thresholds separating positive, negative and neutral posts.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Stats computes descriptive statistics over the compound scores of a set.
// Returns the zero value for an empty slice. StdDev is 0 for fewer than two
// scores.
func Stats(scores []domain.Scores) domain.SetStats {
	if len(scores) == 0 {
		return domain.SetStats{}
	}

	compounds := make([]float64, len(scores))
	positive, negative := 0, 0
	for i, s := range scores {
		compounds[i] = s.Compound
		switch {
		case s.Compound > positiveThreshold:
			positive++
		case s.Compound < negativeThreshold:
			negative++
		}
	}

	sorted := make([]float64, len(compounds))
	copy(sorted, compounds)
	sort.Float64s(sorted)

	stats := domain.SetStats{
		Mean:   stat.Mean(compounds, nil),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(compounds) > 1 {
		stats.StdDev = stat.StdDev(compounds, nil)
	}

	total := float64(len(scores))
	stats.PositiveRatio = float64(positive) / total
	stats.NegativeRatio = float64(negative) / total
	stats.NeutralRatio = float64(len(scores)-positive-negative) / total

	return stats
}

// median of a sorted, non-empty slice. Even-length slices average the two
// middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
