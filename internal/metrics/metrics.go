// Package metrics exposes batch analysis results as Prometheus metrics.
// Batches are short-lived, so metrics are exported through the node
// exporter textfile format rather than served over HTTP.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/waabox/jobwatch/internal/analyzer"
	"github.com/waabox/jobwatch/internal/domain"
)

// Metrics holds the collectors for one jobwatch process.
type Metrics struct {
	registry  *prometheus.Registry
	lines     *prometheus.CounterVec
	messages  *prometheus.CounterVec
	jobs      *prometheus.GaugeVec
	durations prometheus.Histogram
	lastRun   prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobwatch_lines_total",
			Help: "Non-blank log lines read, by parse result.",
		}, []string{"result"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobwatch_report_messages_total",
			Help: "Report messages produced, by severity.",
		}, []string{"severity"}),
		jobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jobwatch_jobs",
			Help: "Jobs in the last analysed batch, by lifecycle state.",
		}, []string{"state"}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobwatch_job_duration_seconds",
			Help:    "Duration of completed jobs.",
			Buckets: []float64{30, 60, 120, 300, 600, 900, 1800, 3600, 7200},
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobwatch_last_run_timestamp_seconds",
			Help: "Unix time of the last analysed batch.",
		}),
	}
	m.registry.MustRegister(m.lines, m.messages, m.jobs, m.durations, m.lastRun)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a finished batch.
func (m *Metrics) Observe(b domain.Batch) {
	m.lines.WithLabelValues("parsed").Add(float64(len(b.Records)))
	m.lines.WithLabelValues("rejected").Add(float64(len(b.Rejected)))

	for sev, n := range b.Counts() {
		m.messages.WithLabelValues(sev.String()).Add(float64(n))
	}

	states := map[domain.JobState]int{
		domain.JobCompleted:    0,
		domain.JobRunning:      0,
		domain.JobMissingStart: 0,
		domain.JobEmpty:        0,
	}
	for _, j := range b.Jobs {
		states[j.State()]++
		if j.State() == domain.JobCompleted {
			m.durations.Observe(analyzer.CompletedDuration(*j.Start, *j.End).Seconds())
		}
	}
	for state, n := range states {
		m.jobs.WithLabelValues(string(state)).Set(float64(n))
	}

	m.lastRun.Set(float64(b.AnalyzedAt.Unix()))
}

// WriteTextfile writes the current metric values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
