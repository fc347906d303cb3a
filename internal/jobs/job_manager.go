package jobs

import (
	"fmt"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop them.
type JobManager struct {
	jobs    []Job
	started int
}

// NewJobManager creates a job manager. Jobs start in the given order and stop in
// reverse order.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all jobs.
// If one fails to start, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.started = i
			jm.StopAll()
			return fmt.Errorf("failed to start job %T: %w", job, err)
		}
	}
	jm.started = len(jm.jobs)
	return nil
}

// StopAll stops the started jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := jm.started - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.started = 0
}
