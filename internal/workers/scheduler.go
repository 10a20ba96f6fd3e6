// internal/workers/scheduler.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Scheduler enqueues periodic tasks on cron schedules
type Scheduler struct {
	cron     *cron.Cron
	enqueuer Enqueuer
	logger   *slog.Logger
}

// NewScheduler creates a scheduler using standard 5-field cron specs
func NewScheduler(enqueuer Enqueuer, logger *slog.Logger) *Scheduler {
	l := logger.With(slog.String("component", "scheduler"))
	cl := cronLogger{logger: l}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		enqueuer: enqueuer,
		logger:   l,
	}
}

// Schedule enqueues a task built by newTask every time spec fires.
// An empty spec disables the job.
func (s *Scheduler) Schedule(spec, name string, newTask func() *asynq.Task) error {
	if spec == "" {
		s.logger.Info("schedule disabled", slog.String("job", name))
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		info, err := s.enqueuer.EnqueueContext(ctx, newTask())
		if err != nil {
			s.logger.Error("failed to enqueue scheduled task",
				slog.String("job", name),
				slog.Any("error", err))
			return
		}
		s.logger.Debug("scheduled task enqueued",
			slog.String("job", name),
			slog.String("task_id", info.ID))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}

	s.logger.Info("job scheduled", slog.String("job", name), slog.String("spec", spec))
	return nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Entries returns the number of scheduled jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// cronLogger routes cron's logging to slog
type cronLogger struct {
	logger *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error(msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}
