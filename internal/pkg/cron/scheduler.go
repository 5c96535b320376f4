package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Schedule yields the next fire time strictly after a given instant.
type Schedule interface {
	Next(after time.Time) time.Time
}

// Every fires at a fixed interval from the previous run.
type Every time.Duration

func (e Every) Next(after time.Time) time.Time {
	return after.Add(time.Duration(e))
}

type wallClock struct {
	hour, minute int
	loc          *time.Location
	// weekday < 0 means every day.
	weekday time.Weekday
}

// DailyAt fires every day at hour:minute in loc.
func DailyAt(hour, minute int, loc *time.Location) Schedule {
	return wallClock{hour: hour, minute: minute, loc: orUTC(loc), weekday: -1}
}

// WeeklyAt fires once a week on day at hour:minute in loc.
func WeeklyAt(day time.Weekday, hour, minute int, loc *time.Location) Schedule {
	return wallClock{hour: hour, minute: minute, loc: orUTC(loc), weekday: day}
}

func (w wallClock) Next(after time.Time) time.Time {
	local := after.In(w.loc)
	y, m, d := local.Date()
	next := time.Date(y, m, d, w.hour, w.minute, 0, 0, w.loc)
	for !next.After(after) || (w.weekday >= 0 && next.Weekday() != w.weekday) {
		next = time.Date(next.Year(), next.Month(), next.Day()+1, w.hour, w.minute, 0, 0, w.loc)
	}
	return next
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// Job represents a scheduled job. Fn receives the instant it was scheduled for.
type Job struct {
	Name     string
	Schedule Schedule
	Fn       func(ctx context.Context, at time.Time) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []Job
	now    func() time.Time
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, schedule Schedule, fn func(ctx context.Context, at time.Time) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Schedule: schedule,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "next_run", schedule.Next(s.now()))
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// Start begins running all scheduled jobs. Nothing runs until its first
// scheduled time.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		next := job.Schedule.Next(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(s.ctx, job, next)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(ctx context.Context, job Job, at time.Time) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name, "scheduled_at", at)

	if err := job.Fn(ctx, at); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once as if scheduled at the current time (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	for _, job := range s.jobs {
		s.executeJob(ctx, job, at)
	}
}
