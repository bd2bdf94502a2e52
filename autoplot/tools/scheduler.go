package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/samber/lo"

	"github.com/ezquant/autoplot/autoplot/tools/log"
)

// Job is a named unit of recurring work, typically re-rendering a chart.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs jobs on cron schedules. A job that fails MaxFailures times in
// a row is removed.
type Scheduler struct {
	MaxFailures int

	ctx      context.Context
	cron     *cron.Cron
	mu       sync.Mutex
	jobs     []*scheduledJob
	failures map[string]int
}

type scheduledJob struct {
	Job
	id cron.EntryID
}

func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		MaxFailures: 3,
		ctx:         ctx,
		cron:        cron.New(),
		failures:    make(map[string]int),
	}
}

// Every registers job under a standard cron spec or a descriptor such as
// "@hourly" or "@every 15m".
func (s *Scheduler) Every(spec string, job Job) error {
	scheduled := &scheduledJob{Job: job}
	id, err := s.cron.AddFunc(spec, func() { s.run(scheduled) })
	if err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name, err)
	}
	scheduled.id = id

	s.mu.Lock()
	s.jobs = append(s.jobs, scheduled)
	s.mu.Unlock()
	return nil
}

// RunNow runs every registered job once, in registration order.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	jobs := append([]*scheduledJob(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.run(job)
	}
}

// Jobs lists the names of the registered jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.jobs, func(job *scheduledJob, _ int) string { return job.Name })
}

func (s *Scheduler) run(job *scheduledJob) {
	if s.ctx.Err() != nil {
		return
	}

	err := job.Run(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, job.Name)
		return
	}

	s.failures[job.Name]++
	log.WithError(err).WithField("job", job.Name).Error("scheduled job failed")
	if s.failures[job.Name] < s.MaxFailures {
		return
	}

	log.Warnf("removing job %s after %d failures", job.Name, s.failures[job.Name])
	s.cron.Remove(job.id)
	s.jobs = lo.Filter(s.jobs, func(j *scheduledJob, _ int) bool { return j != job })
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Infof("scheduler started with %d jobs", len(s.Jobs()))
}

// Stop stops scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}
