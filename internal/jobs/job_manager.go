package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops all scheduled jobs of the application.
type JobManager struct {
	draftExpirationJob *DraftExpirationJob
}

// NewJobManager wires the jobs to the application service.
func NewJobManager(expirer DraftExpirer, draftTTL time.Duration, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		draftExpirationJob: NewDraftExpirationJob(expirer, draftTTL, schedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.draftExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft expiration job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.draftExpirationJob.Stop()
}
