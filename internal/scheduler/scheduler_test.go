package scheduler_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/logging"
	"github.com/waabox/jobwatch/internal/monitor"
	"github.com/waabox/jobwatch/internal/scheduler"
)

type fakeRunner struct {
	calls atomic.Int32
	err   error
	ran   chan time.Time
}

func (f *fakeRunner) Run(_ context.Context, now time.Time) (domain.Batch, error) {
	f.calls.Add(1)
	if f.ran != nil {
		select {
		case f.ran <- now:
		default:
		}
	}
	return domain.Batch{Source: "logs.log", RunID: "r"}, f.err
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	runner := &fakeRunner{ran: make(chan time.Time, 1)}
	var diag bytes.Buffer
	s := scheduler.New(context.Background(), runner, logging.New(&diag, "info"))

	require.NoError(t, s.Start("* * * * * *"))
	defer s.Stop()

	select {
	case <-runner.ran:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a scheduled run within 3 seconds")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	var diag bytes.Buffer
	s := scheduler.New(context.Background(), &fakeRunner{}, logging.New(&diag, "info"))

	assert.Error(t, s.Start("every five minutes"))
}

func TestScheduler_RunNowLogsNoRecords(t *testing.T) {
	runner := &fakeRunner{err: monitor.ErrNoRecords}
	var diag bytes.Buffer
	s := scheduler.New(context.Background(), runner, logging.New(&diag, "info"))

	err := s.RunNow()
	assert.ErrorIs(t, err, monitor.ErrNoRecords)
	assert.Equal(t, int32(1), runner.calls.Load())
	assert.Contains(t, diag.String(), "no valid entries")
}

func TestScheduler_RunNowLogsFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("disk gone")}
	var diag bytes.Buffer
	s := scheduler.New(context.Background(), runner, logging.New(&diag, "info"))

	require.Error(t, s.RunNow())
	assert.Contains(t, diag.String(), "disk gone")
}
