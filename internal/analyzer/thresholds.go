package analyzer

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultWarningThreshold = 5 * time.Minute
	DefaultErrorThreshold   = 10 * time.Minute
)

// Thresholds are the duration limits above which a job is reported.
// Both comparisons are strict: a duration equal to a limit is not reported.
type Thresholds struct {
	Warning time.Duration
	Error   time.Duration
}

// DefaultThresholds returns a 5 minute warning and a 10 minute error limit.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: DefaultWarningThreshold, Error: DefaultErrorThreshold}
}

// Validate checks that both limits are positive and ordered.
func (t Thresholds) Validate() error {
	if t.Warning <= 0 || t.Error <= 0 {
		return errors.New("thresholds must be positive")
	}
	if t.Warning > t.Error {
		return fmt.Errorf("warning threshold %s exceeds error threshold %s", t.Warning, t.Error)
	}
	return nil
}

// exceeded returns the limit that d crosses, or ok=false when d is within limits.
func (t Thresholds) exceeded(d time.Duration) (limit time.Duration, isError bool, ok bool) {
	switch {
	case d > t.Error:
		return t.Error, true, true
	case d > t.Warning:
		return t.Warning, false, true
	default:
		return 0, false, false
	}
}

// shortLimit renders a limit as "10 min" when it is a whole number of minutes.
func shortLimit(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int64(d/time.Minute))
	}
	return d.String()
}

// longLimit renders a limit as "10 minutes" when it is a whole number of minutes.
func longLimit(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int64(d/time.Minute))
	}
	return d.String()
}
