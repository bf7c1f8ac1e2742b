package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultDraftExpirationSchedule runs the expiry sweep once a minute.
const DefaultDraftExpirationSchedule = "@every 1m"

// DraftExpirer cancels Draft orders older than a given age and reports how many it cancelled.
type DraftExpirer interface {
	ExpireDraftOrders(ctx context.Context, olderThan time.Duration) (int, error)
}

// DraftExpirationJob periodically cancels abandoned Draft orders.
type DraftExpirationJob struct {
	expirer  DraftExpirer
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDraftExpirationJob creates a job that cancels drafts older than ttl on the given cron
// schedule. An empty schedule means DefaultDraftExpirationSchedule.
func NewDraftExpirationJob(expirer DraftExpirer, ttl time.Duration, schedule string, logger *slog.Logger) *DraftExpirationJob {
	if schedule == "" {
		schedule = DefaultDraftExpirationSchedule
	}
	return &DraftExpirationJob{
		expirer:  expirer,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "draft_expiration_job"),
	}
}

func (j *DraftExpirationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiration job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Run performs a single sweep.
func (j *DraftExpirationJob) Run(ctx context.Context) {
	expired, err := j.expirer.ExpireDraftOrders(ctx, j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiration job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired draft orders", "count", expired)
	}
}

// Stop waits for a running sweep to finish.
func (j *DraftExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Draft expiration job stopped")
}
