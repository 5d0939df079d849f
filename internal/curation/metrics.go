package curation

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"curator/internal/transcript"
)

// Subtopic results recorded by Metrics.
const (
	SubtopicWinner       = "winner"
	SubtopicNoTranscript = "no_transcript"
	SubtopicNoCandidates = "no_candidates"
	SubtopicSearchFailed = "search_failed"
)

// Candidate results recorded by Metrics.
const (
	CandidateScored             = "scored"
	CandidateAcquisitionFailed  = "acquisition_failed"
	CandidateValidationRejected = "validation_rejected"
)

// Metrics collects run counters on a private registry. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	subtopics       *prometheus.CounterVec
	candidates      *prometheus.CounterVec
	transcripts     *prometheus.CounterVec
	scores          prometheus.Histogram
	degradedScores  prometheus.Counter
	runDuration     prometheus.Gauge
	lastRunFinished prometheus.Gauge
}

// MetricsOption customizes Metrics.
type MetricsOption func(*Metrics)

// WithNamespace overrides the metric namespace (default "curator").
func WithNamespace(namespace string) MetricsOption {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// NewMetrics registers the run metrics on a fresh registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	m := &Metrics{
		namespace: "curator",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.subtopics = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "subtopics_total",
		Help:      "Sub-topics processed, by result",
	}, []string{"result"})
	m.candidates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "candidates_total",
		Help:      "Candidate videos processed, by result",
	}, []string{"result"})
	m.transcripts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "transcript",
		Name:      "acquired_total",
		Help:      "Transcripts acquired, by tier",
	}, []string{"tier"})
	m.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "overall_score",
		Help:      "Distribution of overall relevance scores",
		Buckets:   prometheus.LinearBuckets(0, 1, 11),
	})
	m.degradedScores = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "degraded_total",
		Help:      "Score records replaced by the neutral record",
	})
	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})
	m.lastRunFinished = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pipeline",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SubtopicProcessed(result string) {
	if m == nil {
		return
	}
	m.subtopics.WithLabelValues(result).Inc()
}

func (m *Metrics) CandidateProcessed(result string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(result).Inc()
}

func (m *Metrics) TranscriptAcquired(tier transcript.Tier) {
	if m == nil {
		return
	}
	m.transcripts.WithLabelValues(string(tier)).Inc()
}

func (m *Metrics) ScoreObserved(score int, degraded bool) {
	if m == nil {
		return
	}
	m.scores.Observe(float64(score))
	if degraded {
		m.degradedScores.Inc()
	}
}

// RunFinished records the duration and completion time of a run.
func (m *Metrics) RunFinished(elapsed time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.runDuration.Set(elapsed.Seconds())
	m.lastRunFinished.Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry in the Prometheus text exposition format
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
