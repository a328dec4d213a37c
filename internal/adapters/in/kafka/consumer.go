// Package kafka consumes the order processing topic in batches.
//
// A BatchConsumer accumulates fetched messages and hands them to its BatchHandler once
// MaxBatchSize messages arrived or MaxBatchWait elapsed since the first one. Offsets are
// committed only after the handler succeeded, so a failed batch is delivered again
// after a restart. Handlers must tolerate redelivery.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// ErrBatchFailed wraps the handler error that stopped the consumer.
var ErrBatchFailed = errors.New("batch handler failed")

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Message is a decoded broker message.
type Message[K, V any] struct {
	Key       K
	Value     V
	Partition int
	Offset    int64
	Time      time.Time
}

// Decoder turns a raw message into its key and value.
type Decoder[K, V any] func(msg kafka.Message) (K, V, error)

// BatchHandler receives decoded messages in arrival order.
type BatchHandler[K, V any] interface {
	HandleBatch(ctx context.Context, batch []Message[K, V]) error
}

type Config struct {
	MaxBatchSize int
	MaxBatchWait time.Duration
	PollTimeout  time.Duration
}

func (c Config) Validate() error {
	if c.MaxBatchSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxBatchSize",
			fmt.Errorf("%d is not greater than 0", c.MaxBatchSize))
	}
	if c.MaxBatchWait <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxBatchWait",
			fmt.Errorf("%s is not greater than 0", c.MaxBatchWait))
	}
	if c.PollTimeout <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("pollTimeout",
			fmt.Errorf("%s is not greater than 0", c.PollTimeout))
	}
	return nil
}

type BatchConsumer[K, V any] struct {
	reader  MessageReader
	decode  Decoder[K, V]
	handler BatchHandler[K, V]
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewBatchConsumer[K, V any](
	reader MessageReader,
	decode Decoder[K, V],
	handler BatchHandler[K, V],
	cfg Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*BatchConsumer[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BatchConsumer[K, V]{
		reader:  reader,
		decode:  decode,
		handler: handler,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With("component", "batch_consumer"),
	}, nil
}

// Run polls until ctx is cancelled or a batch fails. Cancellation while a batch is
// still accumulating drops it uncommitted and returns ctx.Err(). A flush that has started
// runs to completion regardless of ctx. A failed handler returns an error wrapping
// ErrBatchFailed without committing the batch.
func (c *BatchConsumer[K, V]) Run(ctx context.Context) error {
	var (
		raw     []kafka.Message
		decoded []Message[K, V]
		started time.Time
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := c.poll(ctx)
		switch {
		case err == nil:
			c.metrics.ConsumedMessages.Inc()
			if len(raw) == 0 {
				started = time.Now()
			}
			raw = append(raw, msg)
			if m, ok := c.decodeMessage(ctx, msg); ok {
				decoded = append(decoded, m)
			}
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			// idle poll
		default:
			c.logger.ErrorContext(ctx, "Fetch failed", "error", err)
			c.pause(ctx)
		}

		if len(raw) == 0 {
			continue
		}
		if len(raw) < c.cfg.MaxBatchSize && time.Since(started) < c.cfg.MaxBatchWait {
			continue
		}

		if err = c.flush(context.WithoutCancel(ctx), raw, decoded); err != nil {
			return err
		}
		raw, decoded = nil, nil
	}
}

func (c *BatchConsumer[K, V]) poll(ctx context.Context) (kafka.Message, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.cfg.PollTimeout)
	defer cancel()
	return c.reader.FetchMessage(pollCtx)
}

func (c *BatchConsumer[K, V]) pause(ctx context.Context) {
	t := time.NewTimer(c.cfg.PollTimeout)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (c *BatchConsumer[K, V]) decodeMessage(ctx context.Context, msg kafka.Message) (Message[K, V], bool) {
	key, value, err := c.decode(msg)
	if err != nil {
		c.metrics.SkippedMessages.Inc()
		c.logger.WarnContext(ctx, "Undecodable message skipped",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return Message[K, V]{}, false
	}
	return Message[K, V]{
		Key:       key,
		Value:     value,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Time:      msg.Time,
	}, true
}

func (c *BatchConsumer[K, V]) flush(ctx context.Context, raw []kafka.Message, decoded []Message[K, V]) error {
	if len(decoded) > 0 {
		if err := c.handler.HandleBatch(ctx, decoded); err != nil {
			c.metrics.ObserveBatch(len(decoded), err)
			c.logger.ErrorContext(ctx, "Batch failed, offsets not committed",
				"size", len(decoded), "error", err)
			return fmt.Errorf("%w: %w", ErrBatchFailed, err)
		}
	}

	if err := c.reader.CommitMessages(ctx, raw...); err != nil {
		c.metrics.ObserveBatch(len(decoded), err)
		return fmt.Errorf("commit offsets: %w", err)
	}

	c.metrics.ObserveBatch(len(decoded), nil)
	c.logger.InfoContext(ctx, "Batch committed", "size", len(decoded), "fetched", len(raw))
	return nil
}
