package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named function run repeatedly at a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs registered jobs on interval tickers. Register jobs
// before Start; registration after Start has no effect until restart.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job under the given name and interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("scheduled job registered", "job", name, "every", interval)
}

// Start launches one goroutine per registered job. Each job fires once
// immediately and then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}

	slog.Info("scheduler running", "jobs", len(s.jobs))
}

// Stop cancels all job loops and blocks until they return.
func (s *Scheduler) Stop() {
	slog.Info("scheduler shutting down")
	s.cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.run(job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("scheduled job stopping", "job", job.Name)
			return
		case <-ticker.C:
			s.run(job)
		}
	}
}

// run invokes the job once; failures are logged, never fatal.
func (s *Scheduler) run(job Job) {
	start := time.Now()
	slog.Debug("scheduled job starting", "job", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("scheduled job failed", "job", job.Name, "error", err, "took", time.Since(start))
		return
	}
	slog.Debug("scheduled job finished", "job", job.Name, "took", time.Since(start))
}

// RunOnce fires every registered job a single time on the caller's
// context, bypassing the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("scheduled job failed", "job", job.Name, "error", err)
		}
	}
}
