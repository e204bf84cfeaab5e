package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/applio/applio_bot/internal/logger"
	"github.com/applio/applio_bot/internal/session"
)

const (
	sweepSchedule = "@every 10m"
	maxIdle       = time.Hour
)

// Scheduler runs the periodic maintenance jobs. Currently that is a single
// job: evicting abandoned in-memory conversation sessions. The Redis backend
// expires keys on its own and does not need it.
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.MemoryStore
}

func NewScheduler(sessions *session.MemoryStore) *Scheduler {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		sessions: sessions,
	}

	if _, err := s.cron.AddFunc(sweepSchedule, s.sweepSessions); err != nil {
		logger.Error("failed to register session sweep job", "error", err)
	}

	return s
}

func (s *Scheduler) sweepSessions() {
	s.runWithRecovery("SweepSessions", func() {
		if evicted := s.sessions.Sweep(maxIdle); evicted > 0 {
			logger.Info("evicted idle sessions", "count", evicted)
		}
	})
}

// runWithRecovery wraps job execution with panic recovery so a failing job
// never takes the scheduler down.
func (s *Scheduler) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	jobFunc()
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started", "sweep_schedule", sweepSchedule)
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}
