package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/monitor"
)

// Runner analyses one batch.
type Runner interface {
	Run(ctx context.Context, now time.Time) (domain.Batch, error)
}

// Scheduler runs batch analyses periodically. Every tick is an independent
// batch; a tick is skipped while the previous one is still running.
type Scheduler struct {
	runner Runner
	cron   *cron.Cron
	logger *log.Logger
	ctx    context.Context
	now    func() time.Time
}

// New creates a scheduler whose runs are bound to ctx.
func New(ctx context.Context, runner Runner, logger *log.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
		ctx:    ctx,
		now:    time.Now,
	}
}

// Start begins the scheduled runs. schedule is a cron expression with a
// leading seconds field, e.g. "0 */5 * * * *".
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		_ = s.RunNow()
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("Job log scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Job log scheduler stopped")
}

// RunNow analyses one batch immediately using the current time.
func (s *Scheduler) RunNow() error {
	started := s.now()
	batch, err := s.runner.Run(s.ctx, started)
	switch {
	case errors.Is(err, monitor.ErrNoRecords):
		s.logger.Warn().Str("source", batch.Source).Msg("Log file is empty or contains no valid entries")
	case err != nil:
		s.logger.Error().Err(err).Str("source", batch.Source).Msg("Scheduled analysis failed")
	default:
		s.logger.Debug().
			Str("run_id", batch.RunID).
			Dur("took", time.Since(started)).
			Msg("Scheduled analysis completed")
	}
	return err
}
