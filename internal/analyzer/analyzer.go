// Package analyzer reconstructs job lifecycles from log records and reports
// jobs whose duration exceeds the configured thresholds.
package analyzer

import (
	"fmt"
	"time"

	"github.com/waabox/jobwatch/internal/domain"
)

const day = 24 * time.Hour

// Analyze groups records by job id and classifies every job, returning the
// report messages in order of each job id's first appearance.
// now is only consulted for jobs that have started but not ended.
func Analyze(records []domain.LogRecord, now time.Time, th Thresholds) []domain.ReportMessage {
	var report []domain.ReportMessage
	for _, job := range Group(records) {
		if msg, ok := Classify(job, now, th); ok {
			report = append(report, msg)
		}
	}
	return report
}

// Group folds records into jobs keyed by job id, preserving first-seen order.
// Repeated START or END records overwrite the earlier timestamp; other
// statuses only register the job.
func Group(records []domain.LogRecord) []domain.Job {
	index := make(map[string]int)
	var jobs []domain.Job
	for _, rec := range records {
		i, ok := index[rec.JobID]
		if !ok {
			i = len(jobs)
			index[rec.JobID] = i
			jobs = append(jobs, domain.Job{ID: rec.JobID, Description: rec.Description})
		}
		ts := rec.Timestamp
		switch domain.NormalizeStatus(string(rec.Status)) {
		case domain.StatusStart:
			jobs[i].Start = &ts
		case domain.StatusEnd:
			jobs[i].End = &ts
		}
	}
	return jobs
}

// Classify produces the report message for a single job, if any.
func Classify(job domain.Job, now time.Time, th Thresholds) (domain.ReportMessage, bool) {
	switch job.State() {
	case domain.JobCompleted:
		d := CompletedDuration(*job.Start, *job.End)
		limit, isError, ok := th.exceeded(d)
		if !ok {
			return domain.ReportMessage{}, false
		}
		msg := newMessage(job, domain.KindSlowCompletion, d, isError)
		if isError {
			msg.Text = fmt.Sprintf("Job %s (%s) took too long to complete above threshold of %s: %s",
				job.ID, job.Description, shortLimit(limit), msg.FormattedDuration)
		} else {
			msg.Text = fmt.Sprintf("Job %s (%s) completed on low performance above threshold of %s: %s",
				job.ID, job.Description, shortLimit(limit), msg.FormattedDuration)
		}
		return msg, true

	case domain.JobRunning:
		d := RunningDuration(*job.Start, now)
		limit, isError, ok := th.exceeded(d)
		if !ok {
			return domain.ReportMessage{}, false
		}
		msg := newMessage(job, domain.KindStillRunning, d, isError)
		msg.Text = fmt.Sprintf("Job %s (%s) is still running and exceeded %s: %s",
			job.ID, job.Description, longLimit(limit), msg.FormattedDuration)
		return msg, true

	case domain.JobMissingStart:
		end := *job.End
		return domain.ReportMessage{
			Severity:    domain.SeverityError,
			Kind:        domain.KindMissingStart,
			JobID:       job.ID,
			Description: job.Description,
			EndTime:     &end,
			Text: fmt.Sprintf("Job %s (%s) has an end time (%s) without a start time",
				job.ID, job.Description, end),
		}, true

	default:
		return domain.ReportMessage{}, false
	}
}

func newMessage(job domain.Job, kind domain.MessageKind, d time.Duration, isError bool) domain.ReportMessage {
	sev := domain.SeverityWarning
	if isError {
		sev = domain.SeverityError
	}
	return domain.ReportMessage{
		Severity:          sev,
		Kind:              kind,
		JobID:             job.ID,
		Description:       job.Description,
		Duration:          d,
		FormattedDuration: FormatDuration(d),
	}
}

// CompletedDuration returns the time between start and end on the same
// nominal day. An end earlier than the start is taken to be on the next day.
func CompletedDuration(start, end domain.Clock) time.Duration {
	d := time.Duration(end.Seconds()-start.Seconds()) * time.Second
	if end.Before(start) {
		d += day
	}
	return d
}

// RunningDuration returns the wall-clock time elapsed since start, read
// from now's clock in now's location. A start later than now is taken to be
// on the previous day. Like CompletedDuration it ignores DST transitions.
func RunningDuration(start domain.Clock, now time.Time) time.Duration {
	current := domain.ClockOf(now)
	d := time.Duration(current.Seconds()-start.Seconds())*time.Second +
		time.Duration(now.Nanosecond())
	if current.Before(start) {
		d += day
	}
	return d
}

// FormatDuration renders d as H:MM:SS with unpadded hours, truncating any
// fraction of a second.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
