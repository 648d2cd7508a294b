// Package jobs runs background work on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	jobs map[string]Job
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]Job),
	}
}

// Register schedules job on a standard five-field cron spec. An empty spec
// registers the job for on-demand runs only.
func (s *Scheduler) Register(spec string, job Job) error {
	if _, dup := s.jobs[job.Name()]; dup {
		return fmt.Errorf("job %s is already registered", job.Name())
	}

	if spec != "" {
		_, err := s.cron.AddFunc(spec, func() {
			if err := job.Run(context.Background()); err != nil {
				log.Printf("[%s] job failed: %v", job.Name(), err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule %s with %q: %w", job.Name(), spec, err)
		}
		log.Printf("[%s] scheduled with cron: %s", job.Name(), spec)
	}

	s.jobs[job.Name()] = job
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunNow runs the named job in the calling goroutine.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	return job.Run(ctx)
}
