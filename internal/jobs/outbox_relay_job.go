package jobs

import (
	"context"
	"log/slog"
	"sync"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// OutboxRelayHandler publishes one batch of pending outbox messages.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob relays pending lifecycle events on a cron schedule.
// A run that overlaps the previous one is skipped.
type OutboxRelayJob struct {
	handler   OutboxRelayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	metrics   *metrics.Metrics
	logger    *slog.Logger

	running sync.Mutex
}

func NewOutboxRelayJob(
	handler OutboxRelayHandler,
	schedule string,
	batchSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		metrics:   m,
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run relays one batch. It is what the schedule triggers.
func (j *OutboxRelayJob) Run(ctx context.Context, cmd commands.RelayOutboxCommand) {
	if !j.running.TryLock() {
		return
	}
	defer j.running.Unlock()

	sent, err := j.handler.Handle(ctx, cmd)
	if sent > 0 {
		j.metrics.OutboxRelayed.Add(float64(sent))
		j.logger.InfoContext(ctx, "Outbox messages relayed", "count", sent)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "relayed", sent, "error", err)
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
