package domain

// JobState classifies a job by which lifecycle timestamps were seen.
type JobState string

const (
	JobCompleted    JobState = "completed"
	JobRunning      JobState = "running"
	JobMissingStart JobState = "missing_start"
	JobEmpty        JobState = "empty"
)

// Job is the lifecycle reconstructed for one job id within a batch.
// Description comes from the first record seen for the id; Start and End
// hold the last START and END timestamps seen.
type Job struct {
	ID          string
	Description string
	Start       *Clock
	End         *Clock
}

// State returns the lifecycle state implied by the timestamps present.
func (j Job) State() JobState {
	switch {
	case j.Start != nil && j.End != nil:
		return JobCompleted
	case j.Start != nil:
		return JobRunning
	case j.End != nil:
		return JobMissingStart
	default:
		return JobEmpty
	}
}
