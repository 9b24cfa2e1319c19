package metrics

import "github.com/prometheus/client_golang/prometheus"

// AnalysisMetrics holds Prometheus metrics for the analysis pipeline.
type AnalysisMetrics struct {
	RunsTotal        *prometheus.CounterVec
	PostsAnalyzed    prometheus.Counter
	AnalysisDuration prometheus.Histogram
	ContestantRating *prometheus.GaugeVec
}

// NewAnalysisMetrics creates and registers pipeline metrics on the given registry.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of analysis runs, by result.",
		}, []string{"result"}),
		PostsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_analyzed_total",
			Help:      "Total number of posts scored for sentiment.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of complete analysis runs in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		ContestantRating: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "contestant_rating_percent",
			Help:      "Latest normalized rating per contestant.",
		}, []string{"contestant"}),
	}

	reg.MustRegister(m.RunsTotal, m.PostsAnalyzed, m.AnalysisDuration, m.ContestantRating)
	return m
}
