package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionSweeper is the slice of SessionService the scheduler needs.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Scheduler runs background jobs.
type Scheduler struct {
	sweeper  SessionSweeper
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(sweeper SessionSweeper, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the jobs and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("sweep_interval", s.interval))

	s.wg.Add(1)
	go s.runSessionSweep(ctx)
}

// Stop signals the jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runSessionSweep(ctx context.Context) {
	defer s.wg.Done()

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Session sweep stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweep cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	removed, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to sweep expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int64("count", removed))
	}
}
