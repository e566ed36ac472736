// Package monitor runs one batch of the job log analysis: it reads the log,
// parses and analyses it, emits the report and records metrics.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/waabox/jobwatch/internal/analyzer"
	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/metrics"
	"github.com/waabox/jobwatch/internal/parser"
	"github.com/waabox/jobwatch/internal/sink"
)

// ErrNoRecords is returned when the log is empty or every line was rejected.
var ErrNoRecords = errors.New("log file is empty or contains no valid entries")

// SinkOpener returns the report sink for a run started at at. If the sink
// also implements io.Closer it is closed once the run has been emitted.
type SinkOpener func(at time.Time) (domain.Sink, error)

// Options configures a Monitor.
type Options struct {
	LogFile     string
	OutputDir   string
	MetricsFile string
	Thresholds  analyzer.Thresholds
	// OpenSink overrides the default timestamped report file in OutputDir.
	OpenSink SinkOpener
}

// Monitor analyses the configured log file. Each call works on a fresh
// batch; no job state is shared between calls.
type Monitor struct {
	opts    Options
	logger  *log.Logger
	metrics *metrics.Metrics
}

// New creates a Monitor. metrics may be nil.
func New(opts Options, logger *log.Logger, m *metrics.Metrics) *Monitor {
	if opts.OpenSink == nil {
		dir := opts.OutputDir
		opts.OpenSink = func(at time.Time) (domain.Sink, error) {
			return sink.OpenFile(dir, at)
		}
	}
	return &Monitor{opts: opts, logger: logger, metrics: m}
}

// Load reads, parses and analyses the log file without emitting anything.
// Rejected lines are logged as warnings and kept on the batch.
func (m *Monitor) Load(ctx context.Context, now time.Time) (domain.Batch, error) {
	batch := domain.Batch{
		RunID:      uuid.NewString(),
		Source:     m.opts.LogFile,
		AnalyzedAt: now,
	}
	if err := ctx.Err(); err != nil {
		return batch, err
	}

	f, err := os.Open(m.opts.LogFile)
	if err != nil {
		return batch, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	records, rejected, lines, err := parser.Scan(f)
	batch.Records = records
	batch.Rejected = rejected
	batch.LinesRead = lines
	for _, r := range rejected {
		m.logger.Warn().
			Str("run_id", batch.RunID).
			Int("line", r.LineNo).
			Str("content", r.Line).
			Err(r.Err).
			Msg("Rejected log line")
	}
	if err != nil {
		return batch, err
	}
	if len(records) == 0 {
		return batch, ErrNoRecords
	}

	batch.Jobs = analyzer.Group(records)
	for _, job := range batch.Jobs {
		if msg, ok := analyzer.Classify(job, now, m.opts.Thresholds); ok {
			batch.Messages = append(batch.Messages, msg)
		}
	}
	return batch, nil
}

// Run loads a batch and emits every report message, in order, to a sink
// opened for this run. A failing emit does not stop the remaining messages.
func (m *Monitor) Run(ctx context.Context, now time.Time) (domain.Batch, error) {
	batch, err := m.Load(ctx, now)
	if err != nil {
		return batch, err
	}
	if err := ctx.Err(); err != nil {
		return batch, err
	}

	s, err := m.opts.OpenSink(now)
	if err != nil {
		return batch, err
	}
	var emitErrs []error
	for _, msg := range batch.Messages {
		if err := s.Emit(msg.Severity, msg.Text); err != nil {
			emitErrs = append(emitErrs, fmt.Errorf("emitting report for job %s: %w", msg.JobID, err))
		}
	}
	if c, ok := s.(io.Closer); ok {
		if err := c.Close(); err != nil {
			emitErrs = append(emitErrs, fmt.Errorf("closing report sink: %w", err))
		}
	}

	if m.metrics != nil {
		m.metrics.Observe(batch)
		if m.opts.MetricsFile != "" {
			if err := m.metrics.WriteTextfile(m.opts.MetricsFile); err != nil {
				m.logger.Error().Err(err).Str("path", m.opts.MetricsFile).Msg("Metrics export failed")
			}
		}
	}

	counts := batch.Counts()
	m.logger.Info().
		Str("run_id", batch.RunID).
		Str("source", batch.Source).
		Int("records", len(batch.Records)).
		Int("rejected", len(batch.Rejected)).
		Int("jobs", len(batch.Jobs)).
		Int("errors", counts[domain.SeverityError]).
		Int("warnings", counts[domain.SeverityWarning]).
		Msg("Batch analysed")

	return batch, errors.Join(emitErrs...)
}
