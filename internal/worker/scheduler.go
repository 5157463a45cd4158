// Package worker runs the periodic background jobs: the completion sweep and
// the outbox relay. Each run first takes a leader lock so that only one
// instance works at a time.
package worker

import (
	"context"
	"log/slog"
	"time"

	"parking-booking/internal/infra/lock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const (
	JobSweep = "sweep"
	JobRelay = "relay"
)

type Scheduler struct {
	cron    *cron.Cron
	locker  lock.Locker
	lockTTL time.Duration
	sweeper commands.Sweeper
	relay   commands.OutboxRelay
	logger  *slog.Logger
}

func NewScheduler(
	cfg config.WorkerConfig,
	locker lock.Locker,
	sweeper commands.Sweeper,
	relay commands.OutboxRelay,
	logger *slog.Logger,
) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(
				cron.Recover(cron.DefaultLogger),
				cron.SkipIfStillRunning(cron.DefaultLogger),
			),
		),
		locker:  locker,
		lockTTL: cfg.LockTTL,
		sweeper: sweeper,
		relay:   relay,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(cfg.SweepSchedule, func() { s.trigger(JobSweep) }); err != nil {
		return nil, errs.Wrapf(err, "invalid sweep schedule %q", cfg.SweepSchedule)
	}
	if _, err := s.cron.AddFunc(cfg.RelaySchedule, func() { s.trigger(JobRelay) }); err != nil {
		return nil, errs.Wrapf(err, "invalid relay schedule %q", cfg.RelaySchedule)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("worker scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) trigger(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()
	if _, err := s.RunOnce(ctx, name); err != nil {
		s.logger.Error("worker job failed", "job", name, "error", err)
	}
}

// RunOnce executes one pass of the named job under the leader lock. It reports
// false when another instance holds the lock.
func (s *Scheduler) RunOnce(ctx context.Context, name string) (bool, error) {
	release, ok, err := s.locker.TryAcquire(ctx, name, s.lockTTL)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Debug("worker job skipped, lock held elsewhere", "job", name)
		return false, nil
	}
	defer release()

	switch name {
	case JobSweep:
		res, err := s.sweeper.Run(ctx)
		s.logger.Info("sweep finished",
			"completed", res.Completed,
			"skipped", res.Skipped,
			"failed", res.Failed,
			"expired_keys", res.ExpiredKeys,
		)
		return true, err
	case JobRelay:
		res, err := s.relay.Run(ctx)
		if res.Published+res.Retried+res.Dead > 0 {
			s.logger.Info("relay finished",
				"published", res.Published,
				"retried", res.Retried,
				"dead", res.Dead,
			)
		}
		return true, err
	default:
		return false, errs.Newf("unknown job %q", name)
	}
}
