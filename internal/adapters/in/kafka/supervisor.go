package kafka

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/pkg/metrics"
)

// Supervisor keeps a BatchConsumer running. After a fatal batch failure it closes the
// reader, waits Backoff and opens a new one, which resumes from the committed offset and
// so redelivers the failed batch.
type Supervisor[K, V any] struct {
	newReader func() (MessageReader, error)
	decode    Decoder[K, V]
	handler   BatchHandler[K, V]
	cfg       Config
	backoff   time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewSupervisor[K, V any](
	newReader func() (MessageReader, error),
	decode Decoder[K, V],
	handler BatchHandler[K, V],
	cfg Config,
	backoff time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Supervisor[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Supervisor[K, V]{
		newReader: newReader,
		decode:    decode,
		handler:   handler,
		cfg:       cfg,
		backoff:   backoff,
		metrics:   m,
		logger:    logger.With("component", "consumer_supervisor"),
	}, nil
}

// Run blocks until ctx is cancelled.
func (s *Supervisor[K, V]) Run(ctx context.Context) {
	for attempt := 1; ; attempt++ {
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			s.logger.InfoContext(ctx, "Consumer stopped")
			return
		}

		s.logger.ErrorContext(ctx, "Consumer failed, restarting",
			"attempt", attempt, "backoff", s.backoff, "error", err)

		t := time.NewTimer(s.backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			s.logger.InfoContext(ctx, "Consumer stopped")
			return
		case <-t.C:
		}
	}
}

func (s *Supervisor[K, V]) runOnce(ctx context.Context) error {
	reader, err := s.newReader()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "Reader close failed", "error", closeErr)
		}
	}()

	consumer, err := NewBatchConsumer(reader, s.decode, s.handler, s.cfg, s.metrics, s.logger)
	if err != nil {
		return err
	}
	return consumer.Run(ctx)
}
