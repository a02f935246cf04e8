package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	embedFailures *prom.CounterVec
	featureCells  prom.Gauge
	brokenLinks   *prom.CounterVec
	fileResults   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A
// nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.embedFailures = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "embed_failures_total",
		Help:      "Third-party embeds that failed to load and were rendered empty",
	}, []string{"region"})
	pr.featureCells = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "feature_cells",
		Help:      "Number of feature grid cells in the last composition",
	})
	pr.brokenLinks = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "broken_links_total",
		Help:      "Broken internal links found, by policy",
	}, []string{"policy"})
	pr.fileResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "output_files_total",
		Help:      "Output files by write result",
	}, []string{"result"})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.embedFailures, pr.featureCells, pr.brokenLinks, pr.fileResults)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncEmbedFailure(region string) {
	p.embedFailures.WithLabelValues(region).Inc()
}

func (p *PrometheusRecorder) ObserveFeatureCells(n int) {
	p.featureCells.Set(float64(n))
}

func (p *PrometheusRecorder) IncBrokenLinks(policy string, n int) {
	if n <= 0 {
		return
	}
	p.brokenLinks.WithLabelValues(policy).Add(float64(n))
}

func (p *PrometheusRecorder) IncFileResult(result FileResultLabel) {
	p.fileResults.WithLabelValues(string(result)).Inc()
}

// WriteTextfile writes the current metric values in the node_exporter
// textfile format to path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
