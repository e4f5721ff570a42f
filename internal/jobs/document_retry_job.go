package jobs

import (
	"context"
	"log/slog"

	"shipments/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDocumentRetrySchedule runs the retry at second zero of every minute.
const DefaultDocumentRetrySchedule = "0 * * * * *"

type pendingDocumentsHandler interface {
	Handle(ctx context.Context, cmd commands.RenderPendingDocumentsCommand) (int, error)
}

// DocumentRetryJob re-renders documents that were stored with a placeholder
// reference because rendering failed after issuance.
type DocumentRetryJob struct {
	handler   pendingDocumentsHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	tick      cron.Job
	logger    *slog.Logger
}

// NewDocumentRetryJob creates the job. An empty schedule means DefaultDocumentRetrySchedule.
func NewDocumentRetryJob(
	handler pendingDocumentsHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *DocumentRetryJob {
	if schedule == "" {
		schedule = DefaultDocumentRetrySchedule
	}
	logger = logger.With("component", "document_retry_job")
	cl := cronLogger{logger: logger}

	j := &DocumentRetryJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithLogger(cl)),
		logger:    logger,
	}
	// A slow batch must not overlap the next tick.
	j.tick = cron.NewChain(cron.SkipIfStillRunning(cl)).
		Then(cron.FuncJob(func() { j.Run(context.Background()) }))
	return j
}

// Start registers the job with its schedule and starts the scheduler.
func (j *DocumentRetryJob) Start() error {
	if _, err := commands.NewRenderPendingDocumentsCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddJob(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("document retry job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run executes one batch.
func (j *DocumentRetryJob) Run(ctx context.Context) {
	cmd, err := commands.NewRenderPendingDocumentsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "document retry job misconfigured", "error", err)
		return
	}

	rendered, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "document retry job failed", "error", err)
		return
	}
	if rendered > 0 {
		j.logger.InfoContext(ctx, "pending documents rendered", "count", rendered)
	}
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *DocumentRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("document retry job stopped")
}
