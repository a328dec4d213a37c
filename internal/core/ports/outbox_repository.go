package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/outbox"
)

// OutboxRepository stores lifecycle events alongside the mutations that cause them.
type OutboxRepository interface {
	// Add stores a pending message.
	Add(ctx context.Context, message *outbox.Message) error

	// FetchPending returns up to limit messages that are neither sent nor dead-lettered,
	// ordered by id. Inside a unit of work the rows stay locked, and rows locked by
	// another relay are skipped.
	FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkSent records the delivery time of the given messages.
	MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error

	// MarkDeadLettered parks messages that can never be published. They are kept for
	// inspection and no longer returned by FetchPending.
	MarkDeadLettered(ctx context.Context, ids []int64, at time.Time) error
}
