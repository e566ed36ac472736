package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle marker carried by a log record.
type Status string

const (
	StatusStart Status = "START"
	StatusEnd   Status = "END"
)

// NormalizeStatus upper-cases and trims a raw status field.
func NormalizeStatus(s string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(s)))
}

// Known reports whether the status affects a job lifecycle.
func (s Status) Known() bool {
	return s == StatusStart || s == StatusEnd
}

// Clock is a time of day without a date component.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// String renders the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Seconds returns the number of seconds elapsed since midnight.
func (c Clock) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is earlier in the day than o.
func (c Clock) Before(o Clock) bool {
	return c.Seconds() < o.Seconds()
}

// LogRecord is a single parsed line of the job log.
type LogRecord struct {
	Timestamp   Clock
	Description string
	Status      Status
	JobID       string
}
