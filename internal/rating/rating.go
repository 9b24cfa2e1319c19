// Package rating aggregates per-post sentiment into contestant ratings.
//
// A contestant's raw score is the mean compound sentiment of their posts.
// Raw scores are shifted by +1 (compound lives in [-1,1], so the shifted
// score lives in [0,2]) and normalized so the percentages sum to 100. The
// shift keeps percentages well-defined when some means are negative; the
// ordering of contestants is unchanged by it.
package rating

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// Calculator aggregates scored sets into ranked contestant results.
type Calculator struct{}

// RawScore computes the mean compound score and post count for one set.
func (Calculator) RawScore(scored domain.ScoredSet) (float64, int, error) {
	if len(scored.Scores) == 0 {
		return 0, 0, fmt.Errorf("%s: %w", scored.Set.Contestant, domain.ErrNoPosts)
	}

	compounds := make([]float64, len(scored.Scores))
	for i, s := range scored.Scores {
		compounds[i] = s.Compound
	}

	return stat.Mean(compounds, nil), len(compounds), nil
}

// Aggregate computes ratings for all scored sets, sorted highest first.
// Sets with no posts are skipped; aggregation fails only when nothing is
// left to rate.
func (c Calculator) Aggregate(sets []domain.ScoredSet) ([]domain.ContestantResult, error) {
	results := make([]domain.ContestantResult, 0, len(sets))
	for _, scored := range sets {
		raw, count, err := c.RawScore(scored)
		if err != nil {
			continue
		}
		results = append(results, domain.ContestantResult{
			Name:      scored.Set.Contestant,
			RawScore:  raw,
			PostCount: count,
		})
	}

	if len(results) == 0 {
		return nil, domain.ErrNoResults
	}

	normalize(results)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})

	return results, nil
}

// normalize fills in Rating as each contestant's percentage share of the
// shifted raw scores. When every shifted score is zero (all posts maximally
// negative) everyone gets an equal share.
func normalize(results []domain.ContestantResult) {
	var total float64
	for _, r := range results {
		total += r.RawScore + 1
	}

	if total == 0 {
		share := 100.0 / float64(len(results))
		for i := range results {
			results[i].Rating = share
		}
		return
	}

	for i := range results {
		results[i].Rating = (results[i].RawScore + 1) / total * 100
	}
}
