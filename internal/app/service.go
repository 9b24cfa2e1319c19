package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/francisatoyebi/housepulse/internal/cleaner"
	"github.com/francisatoyebi/housepulse/internal/domain"
	"github.com/francisatoyebi/housepulse/internal/loader"
	"github.com/francisatoyebi/housepulse/internal/logging"
	"github.com/francisatoyebi/housepulse/internal/metrics"
	"github.com/francisatoyebi/housepulse/internal/rating"
	"github.com/francisatoyebi/housepulse/internal/sentiment"
)

// Service is the application layer, the only component that references
// multiple domain components. It runs the analysis use case end to end.
type Service struct {
	scorer   domain.Scorer
	store    domain.RunStore
	renderer domain.Renderer
	calc     rating.Calculator
	clock    clockwork.Clock
	metrics  *metrics.AnalysisMetrics
	workers  int
}

// Options configures optional service collaborators.
// Store, Renderer and Metrics may be nil; the pipeline then skips archiving,
// chart rendering and instrumentation respectively.
type Options struct {
	Store    domain.RunStore
	Renderer domain.Renderer
	Metrics  *metrics.AnalysisMetrics
	Workers  int
}

// NewService creates the application layer service.
func NewService(scorer domain.Scorer, clock clockwork.Clock, opts Options) *Service {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		scorer:   scorer,
		store:    opts.Store,
		renderer: opts.Renderer,
		metrics:  opts.Metrics,
		clock:    clock,
		workers:  workers,
	}
}

// Analyze executes the full pipeline over the CSV files in dataDir and
// returns the finished run.
func (s *Service) Analyze(ctx context.Context, dataDir string) (*domain.Run, error) {
	runID := uuid.New()
	startedAt := s.clock.Now()
	log := logging.WithRun(runID.String())

	log.Info("Starting analysis run", "data_dir", dataDir)

	sets, err := loader.LoadAll(dataDir)
	if err != nil {
		s.countRun("failure")
		return nil, err
	}

	scored, totalPosts, err := s.scoreAll(ctx, sets)
	if err != nil {
		s.countRun("failure")
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PostsAnalyzed.Add(float64(totalPosts))
	}

	results, err := s.calc.Aggregate(scored)
	if err != nil {
		s.countRun("failure")
		return nil, err
	}

	run := &domain.Run{
		ID:         runID,
		SourceDir:  dataDir,
		StartedAt:  startedAt,
		FinishedAt: s.clock.Now(),
		TotalPosts: totalPosts,
		Results:    results,
	}

	if s.renderer != nil {
		if err := s.renderer.RenderAll(run); err != nil {
			s.countRun("failure")
			return nil, err
		}
	}

	if s.store != nil {
		if err := s.store.SaveRun(ctx, run); err != nil {
			s.countRun("failure")
			return nil, err
		}
	}

	s.observeRun(run)
	log.Info("Analysis run finished",
		"contestants", len(run.Results),
		"posts", run.TotalPosts,
		"duration", run.FinishedAt.Sub(run.StartedAt))

	return run, nil
}

// scoreAll cleans and scores every set concurrently. Sets that clean down to
// nothing are skipped with a warning. Returns the scored sets in input order
// and the total number of posts scored. A cancelled context aborts scoring
// with the cancellation error so a partial run is never reported as complete.
func (s *Service) scoreAll(ctx context.Context, sets []domain.PostSet) ([]domain.ScoredSet, int, error) {
	scored := make([]domain.ScoredSet, len(sets))
	keep := make([]bool, len(sets))

	var mu sync.Mutex
	totalPosts := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, set := range sets {
		i, set := i, set
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			log := logging.WithContestant(set.Contestant)

			cleaned := cleaner.Clean(set)
			if cleaned.Count() == 0 {
				log.Warn("No posts left after cleaning, skipping contestant",
					"loaded", set.Count())
				return nil
			}

			result := sentiment.ScoreSet(s.scorer, cleaned)
			stats := sentiment.Stats(result.Scores)
			log.Info("Scored contestant",
				"posts", cleaned.Count(),
				"mean", stats.Mean,
				"median", stats.Median,
				"stddev", stats.StdDev,
				"min", stats.Min,
				"max", stats.Max,
				"positive_ratio", stats.PositiveRatio,
				"negative_ratio", stats.NegativeRatio,
				"neutral_ratio", stats.NeutralRatio)

			mu.Lock()
			scored[i] = result
			keep[i] = true
			totalPosts += cleaned.Count()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	kept := make([]domain.ScoredSet, 0, len(scored))
	for i, ok := range keep {
		if ok {
			kept = append(kept, scored[i])
		}
	}
	return kept, totalPosts, nil
}

func (s *Service) countRun(result string) {
	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(result).Inc()
	}
}

func (s *Service) observeRun(run *domain.Run) {
	if s.metrics == nil {
		return
	}
	s.metrics.RunsTotal.WithLabelValues("success").Inc()
	s.metrics.AnalysisDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
	for _, res := range run.Results {
		s.metrics.ContestantRating.WithLabelValues(res.Name).Set(res.Rating)
	}
}
