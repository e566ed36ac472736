// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrFieldCount is returned when a log line does not have exactly four fields.
var ErrFieldCount = errors.New("incorrect number of fields")

// ErrTimestamp is returned when the first field is not a valid HH:MM:SS time of day.
var ErrTimestamp = errors.New("invalid timestamp")

// ParseError describes a rejected log line. Callers can match the cause with
// errors.Is against ErrFieldCount or ErrTimestamp.
type ParseError struct {
	LineNo int
	Line   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("line %d: %q: %v", e.LineNo, e.Line, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
