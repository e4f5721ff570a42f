package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	documentRetryJob *DocumentRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(documentRetryJob *DocumentRetryJob) *JobManager {
	return &JobManager{
		documentRetryJob: documentRetryJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.documentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start document retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.documentRetryJob.Stop()
}
