package domain

import "time"

// Severity is the level attached to a report message.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageKind identifies which condition produced a report message.
type MessageKind string

const (
	KindSlowCompletion MessageKind = "slow_completion"
	KindStillRunning   MessageKind = "still_running"
	KindMissingStart   MessageKind = "missing_start"
)

// ReportMessage is one finding of the job analysis.
type ReportMessage struct {
	Severity          Severity
	Kind              MessageKind
	JobID             string
	Description       string
	Duration          time.Duration
	FormattedDuration string
	// EndTime is set for KindMissingStart only.
	EndTime *Clock
	Text    string
}

func (m ReportMessage) String() string {
	return m.Text
}

// Batch is the outcome of analysing one finite log input.
type Batch struct {
	RunID      string
	Source     string
	AnalyzedAt time.Time
	LinesRead  int
	Records    []LogRecord
	Jobs       []Job
	Messages   []ReportMessage
	Rejected   []*ParseError
}

// Counts returns the number of report messages per severity.
func (b Batch) Counts() map[Severity]int {
	counts := map[Severity]int{SeverityWarning: 0, SeverityError: 0}
	for _, m := range b.Messages {
		counts[m.Severity]++
	}
	return counts
}
