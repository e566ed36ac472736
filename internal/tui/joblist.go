package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/waabox/jobwatch/internal/analyzer"
	"github.com/waabox/jobwatch/internal/domain"
)

// JobListModel is an immutable model for the jobs panel.
type JobListModel struct {
	jobs   []domain.Job
	at     time.Time
	cursor int
}

// NewJobListModel creates a job list model. at is the instant the batch was
// analysed at and is used for the elapsed time of running jobs.
func NewJobListModel(jobs []domain.Job, at time.Time) JobListModel {
	return JobListModel{jobs: jobs, at: at, cursor: 0}
}

// MoveDown returns a new model with the cursor moved down by one.
func (m JobListModel) MoveDown() JobListModel {
	if m.cursor < len(m.jobs)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m JobListModel) MoveUp() JobListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Select returns a new model with the cursor on the job with the given id.
// The cursor is unchanged if the id is unknown.
func (m JobListModel) Select(id string) JobListModel {
	for i, j := range m.jobs {
		if j.ID == id {
			m.cursor = i
			break
		}
	}
	return m
}

// Cursor returns the current cursor position.
func (m JobListModel) Cursor() int {
	return m.cursor
}

// Jobs returns the full job slice.
func (m JobListModel) Jobs() []domain.Job {
	return m.jobs
}

// View renders the job list with cursor indicators.
func (m JobListModel) View() string {
	if len(m.jobs) == 0 {
		return "No jobs found."
	}
	var sb strings.Builder
	for i, j := range m.jobs {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s #%-8s %-25s %8s %8s %8s\n",
			prefix,
			stateIcon(j.State()),
			truncate(j.ID, 8),
			truncate(j.Description, 25),
			clockOrDash(j.Start),
			clockOrDash(j.End),
			m.duration(j),
		))
	}
	return sb.String()
}

func (m JobListModel) duration(j domain.Job) string {
	switch j.State() {
	case domain.JobCompleted:
		return analyzer.FormatDuration(analyzer.CompletedDuration(*j.Start, *j.End))
	case domain.JobRunning:
		return analyzer.FormatDuration(analyzer.RunningDuration(*j.Start, m.at))
	default:
		return "--"
	}
}

func clockOrDash(c *domain.Clock) string {
	if c == nil {
		return "--"
	}
	return c.String()
}
