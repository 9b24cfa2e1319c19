package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContestantResult is the aggregated outcome for one contestant.
// Rating is the normalized percentage share; RawScore is the mean compound
// sentiment the percentage was derived from.
type ContestantResult struct {
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	RawScore  float64 `json:"raw_score"`
	PostCount int     `json:"post_count"`
}

// Run is one complete analysis over a data directory.
// Results are sorted by Rating, highest first.
type Run struct {
	ID         uuid.UUID          `json:"id"`
	SourceDir  string             `json:"source_dir"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	TotalPosts int                `json:"total_posts"`
	Results    []ContestantResult `json:"results"`
}

// LowestRated returns the contestant with the lowest rating, the one most
// likely to be eliminated. ok is false when the run has no results.
func (r *Run) LowestRated() (ContestantResult, bool) {
	if len(r.Results) == 0 {
		return ContestantResult{}, false
	}
	lowest := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Rating < lowest.Rating {
			lowest = res
		}
	}
	return lowest, true
}

// HighestRated returns the contestant with the highest rating.
func (r *Run) HighestRated() (ContestantResult, bool) {
	if len(r.Results) == 0 {
		return ContestantResult{}, false
	}
	highest := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Rating > highest.Rating {
			highest = res
		}
	}
	return highest, true
}

// RunStore abstracts run archive persistence.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	LatestRun(ctx context.Context) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	PruneRuns(ctx context.Context, before time.Time) (int64, error)
}

// Renderer turns a finished run into chart artifacts.
type Renderer interface {
	RenderAll(run *Run) error
}
