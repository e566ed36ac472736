// Package report renders an analysed batch for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/waabox/jobwatch/internal/domain"
)

// Renderer writes a batch in one output format.
type Renderer interface {
	Render(w io.Writer, b domain.Batch) error
}

// TextRenderer writes one "SEVERITY: message" line per report message.
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, b domain.Batch) error {
	if len(b.Messages) == 0 {
		_, err := fmt.Fprintln(w, "No job exceeded its thresholds.")
		return err
	}
	for _, m := range b.Messages {
		if _, err := fmt.Fprintf(w, "%s: %s\n", m.Severity, m.Text); err != nil {
			return err
		}
	}
	return nil
}

// TableRenderer writes the report messages as a table.
type TableRenderer struct{}

func (TableRenderer) Render(w io.Writer, b domain.Batch) error {
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Job", "Description", "Duration", "Message")
	for _, m := range b.Messages {
		duration := m.FormattedDuration
		if duration == "" {
			duration = "--"
		}
		if err := table.Append(m.Severity.String(), m.JobID, m.Description, duration, m.Text); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	counts := b.Counts()
	_, err := fmt.Fprintf(w, "%d job(s), %d error(s), %d warning(s), %d rejected line(s)\n",
		len(b.Jobs), counts[domain.SeverityError], counts[domain.SeverityWarning], len(b.Rejected))
	return err
}

// document mirrors a batch for clean JSON and YAML output.
type document struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Source     string         `json:"source" yaml:"source"`
	AnalyzedAt string         `json:"analyzed_at" yaml:"analyzed_at"`
	LinesRead  int            `json:"lines_read" yaml:"lines_read"`
	Jobs       int            `json:"jobs" yaml:"jobs"`
	Errors     int            `json:"errors" yaml:"errors"`
	Warnings   int            `json:"warnings" yaml:"warnings"`
	Messages   []docMessage   `json:"messages" yaml:"messages"`
	Rejected   []docRejection `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

type docMessage struct {
	Severity        string  `json:"severity" yaml:"severity"`
	Kind            string  `json:"kind" yaml:"kind"`
	JobID           string  `json:"job_id" yaml:"job_id"`
	Description     string  `json:"description" yaml:"description"`
	Duration        string  `json:"duration,omitempty" yaml:"duration,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	EndTime         string  `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Message         string  `json:"message" yaml:"message"`
}

type docRejection struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
}

func newDocument(b domain.Batch) document {
	counts := b.Counts()
	doc := document{
		RunID:      b.RunID,
		Source:     b.Source,
		AnalyzedAt: b.AnalyzedAt.Format(time.RFC3339),
		LinesRead:  b.LinesRead,
		Jobs:       len(b.Jobs),
		Errors:     counts[domain.SeverityError],
		Warnings:   counts[domain.SeverityWarning],
		Messages:   make([]docMessage, 0, len(b.Messages)),
	}
	for _, m := range b.Messages {
		dm := docMessage{
			Severity:    m.Severity.String(),
			Kind:        string(m.Kind),
			JobID:       m.JobID,
			Description: m.Description,
			Duration:    m.FormattedDuration,
			Message:     m.Text,
		}
		if m.FormattedDuration != "" {
			dm.DurationSeconds = m.Duration.Truncate(time.Second).Seconds()
		}
		if m.EndTime != nil {
			dm.EndTime = m.EndTime.String()
		}
		doc.Messages = append(doc.Messages, dm)
	}
	for _, r := range b.Rejected {
		doc.Rejected = append(doc.Rejected, docRejection{Line: r.LineNo, Text: r.Line, Reason: r.Err.Error()})
	}
	return doc
}

// JSONRenderer writes the batch as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, b domain.Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(b))
}

// YAMLRenderer writes the batch as YAML.
type YAMLRenderer struct{}

func (YAMLRenderer) Render(w io.Writer, b domain.Batch) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(b)); err != nil {
		return err
	}
	return enc.Close()
}
