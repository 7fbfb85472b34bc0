package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

const namespace = "sitemigrate"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	phaseDuration   *prom.HistogramVec
	pageResults     *prom.CounterVec
	linkRewrites    *prom.CounterVec
	runOutcome      *prom.CounterVec
	staleReferences prom.Gauge
	lastRun         prom.Gauge
}

// NewPrometheusRecorder constructs the migration metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		phaseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of migration phases",
			Buckets:   prom.DefBuckets,
		}, []string{"phase"}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_results_total",
			Help:      "Mapped pages by outcome",
		}, []string{"result"}),
		linkRewrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_rewrites_total",
			Help:      "Rewritten references by kind",
		}, []string{"kind"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Migration runs by final status",
		}, []string{"outcome"}),
		staleReferences: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_references",
			Help:      "Legacy page references found by the last verification",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.phaseDuration, pr.pageResults, pr.linkRewrites, pr.runOutcome, pr.staleReferences, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase Phase, d time.Duration) {
	if p == nil {
		return
	}
	p.phaseDuration.WithLabelValues(string(phase)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result PageResult) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddLinkRewrites(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.linkRewrites.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) SetStaleReferences(n int) {
	if p == nil {
		return
	}
	p.staleReferences.Set(float64(n))
}

// WriteTextfile writes everything gathered by g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", path).
			Build()
	}
	return nil
}
