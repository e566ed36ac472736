package domain

import (
	"context"
	"time"
)

// Sink receives report messages in the order they were produced.
// Implementations decide how severity is rendered and where messages are persisted.
type Sink interface {
	Emit(severity Severity, message string) error
}

// BatchSource is the port interface that produces an analysed batch.
// now is the instant used for jobs that are still running.
type BatchSource interface {
	Load(ctx context.Context, now time.Time) (Batch, error)
}
