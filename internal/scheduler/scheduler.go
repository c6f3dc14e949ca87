package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/worker"
)

// Submitter accepts background jobs.
type Submitter interface {
	Submit(job worker.Job) error
}

// Scheduler enqueues periodic jobs on a worker pool.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pool      Submitter
	log       *logger.Logger
}

// New creates a scheduler that submits to pool.
func New(pool Submitter) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pool:      pool,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Every registers job to be submitted once per interval, starting immediately.
func (s *Scheduler) Every(interval time.Duration, job worker.Job) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %v for %s", interval, job.Name())
	}
	_, err := s.scheduler.Every(interval).Do(s.submit, job)
	if err != nil {
		return err
	}
	s.log.Info("scheduled %s every %v", job.Name(), interval)
	return nil
}

func (s *Scheduler) submit(job worker.Job) {
	if err := s.pool.Submit(job); err != nil {
		s.log.Warn("could not enqueue %s: %v", job.Name(), err)
	}
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop halts all scheduled jobs. Jobs already submitted keep running.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}
