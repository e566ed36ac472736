// Package parser turns raw job log lines into domain records.
//
// A line has the form HH:MM:SS,<description>,<STATUS>,<job_id>. Fields are
// trimmed after splitting and the status is upper-cased.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/waabox/jobwatch/internal/domain"
)

const (
	fieldCount  = 4
	clockLayout = "15:04:05"
)

// Parse converts a single log line into a LogRecord.
// It returns a *domain.ParseError wrapping ErrFieldCount or ErrTimestamp on failure.
func Parse(line string) (domain.LogRecord, error) {
	trimmed := strings.TrimSpace(line)
	parts := strings.Split(trimmed, ",")
	if len(parts) != fieldCount {
		return domain.LogRecord{}, &domain.ParseError{
			Line: trimmed,
			Err:  fmt.Errorf("%w: got %d, want %d", domain.ErrFieldCount, len(parts), fieldCount),
		}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	ts, err := time.Parse(clockLayout, parts[0])
	if err != nil {
		return domain.LogRecord{}, &domain.ParseError{
			Line: trimmed,
			Err:  fmt.Errorf("%w: %v", domain.ErrTimestamp, err),
		}
	}

	return domain.LogRecord{
		Timestamp:   domain.ClockOf(ts),
		Description: parts[1],
		Status:      domain.NormalizeStatus(parts[2]),
		JobID:       parts[3],
	}, nil
}

// Scan parses every non-blank line of r. Rejected lines are collected with
// their 1-based line number and never stop the scan. lines is the number of
// non-blank lines read. Lines of any length are accepted. The returned
// error is non-nil only if r fails.
func Scan(r io.Reader) (records []domain.LogRecord, rejected []*domain.ParseError, lines int, err error) {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return records, rejected, lines, fmt.Errorf("reading log: %w", rerr)
		}
		if raw == "" && rerr == io.EOF {
			break
		}
		lineNo++
		if strings.TrimSpace(raw) == "" {
			if rerr == io.EOF {
				break
			}
			continue
		}
		lines++
		rec, perr := Parse(raw)
		if perr != nil {
			pe := perr.(*domain.ParseError)
			pe.LineNo = lineNo
			rejected = append(rejected, pe)
		} else {
			records = append(records, rec)
		}
		if rerr == io.EOF {
			break
		}
	}
	return records, rejected, lines, nil
}
