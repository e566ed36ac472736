// Package sink holds the destinations report messages are emitted to.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/phuslu/log"

	"github.com/waabox/jobwatch/internal/domain"
)

// ReportFileName returns the report file name for a run started at at.
func ReportFileName(at time.Time) string {
	return "analysed_logs_" + at.Format("200601021504") + ".log"
}

// LogSink writes one "YYYY-MM-DD HH:MM: SEVERITY: message" line per report
// message through a phuslu logger.
type LogSink struct {
	logger *log.Logger
	out    *errWriter
	closer io.Closer
	path   string
}

// NewLogSink returns a sink writing to w.
func NewLogSink(w io.Writer) *LogSink {
	out := &errWriter{w: w}
	return &LogSink{
		out: out,
		logger: &log.Logger{
			Level:      log.InfoLevel,
			TimeFormat: "2006-01-02 15:04",
			Writer: &log.ConsoleWriter{
				Writer:    out,
				Formatter: formatLine,
			},
		},
	}
}

// OpenFile creates dir if needed and returns a sink appending to the report
// file for a run started at at.
func OpenFile(dir string, at time.Time) (*LogSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, ReportFileName(at))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening report file: %w", err)
	}
	s := NewLogSink(f)
	s.closer = f
	s.path = path
	return s, nil
}

// Path returns the report file path, or "" for a sink not backed by a file.
func (s *LogSink) Path() string {
	return s.path
}

// Emit writes message at the log level matching severity.
func (s *LogSink) Emit(severity domain.Severity, message string) error {
	switch severity {
	case domain.SeverityError:
		s.logger.Error().Msg(message)
	case domain.SeverityWarning:
		s.logger.Warn().Msg(message)
	default:
		return fmt.Errorf("unknown severity %d", severity)
	}
	return s.out.take()
}

// Close closes the underlying file, if any.
func (s *LogSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func formatLine(w io.Writer, a *log.FormatterArgs) (int, error) {
	return fmt.Fprintf(w, "%s: %s: %s\n", a.Time, severityLabel(a.Level), a.Message)
}

func severityLabel(level string) string {
	switch level {
	case "error":
		return domain.SeverityError.String()
	case "warn":
		return domain.SeverityWarning.String()
	default:
		return level
	}
}

// errWriter remembers the first write error so Emit can report it.
type errWriter struct {
	w   io.Writer
	mu  sync.Mutex
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil {
		e.mu.Lock()
		if e.err == nil {
			e.err = err
		}
		e.mu.Unlock()
	}
	return n, err
}

func (e *errWriter) take() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.err
	e.err = nil
	return err
}

// Entry is a report message captured by a Recorder.
type Entry struct {
	Severity domain.Severity
	Message  string
}

// Recorder keeps every emitted message in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Emit records the message.
func (r *Recorder) Emit(severity domain.Severity, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Severity: severity, Message: message})
	return nil
}

// Entries returns a copy of the recorded messages in emission order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
