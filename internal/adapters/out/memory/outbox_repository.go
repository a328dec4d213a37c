package memory

import (
	"context"
	"slices"
	"time"

	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
)

var _ ports.OutboxRepository = &OutboxRepository{}

type OutboxRepository struct {
	uow *UnitOfWork
}

func (r *OutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, "outbox.add", func(s *Store) error {
		row := outboxRow{
			id:        s.next(&s.seq.outbox),
			eventID:   message.EventID(),
			orderID:   message.OrderID(),
			kind:      message.Kind(),
			payload:   slices.Clone(message.Payload()),
			createdAt: message.CreatedAt(),
			sentAt:    message.SentAt(),
		}
		s.data.outbox[row.id] = row
		return nil
	})
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var rows []outboxRow
	err := r.uow.read(ctx, "outbox.fetch_pending", func(s *Store) error {
		for _, row := range s.data.outbox {
			if row.sentAt == nil && row.deadAt == nil {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b outboxRow) int { return compareIDs(a.id, b.id) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	result := make([]*outbox.Message, 0, len(rows))
	for _, row := range rows {
		m, err := outbox.RestoreMessage(row.id, row.eventID, row.orderID, row.kind, row.payload, row.createdAt, row.sentAt)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	return r.uow.write(ctx, "outbox.mark_sent", func(s *Store) error {
		at := sentAt.UTC()
		for _, id := range ids {
			row, ok := s.data.outbox[id]
			if !ok || row.sentAt != nil {
				continue
			}
			row.sentAt = &at
			s.data.outbox[id] = row
		}
		return nil
	})
}

func (r *OutboxRepository) MarkDeadLettered(ctx context.Context, ids []int64, at time.Time) error {
	return r.uow.write(ctx, "outbox.mark_dead_lettered", func(s *Store) error {
		deadAt := at.UTC()
		for _, id := range ids {
			row, ok := s.data.outbox[id]
			if !ok || row.sentAt != nil || row.deadAt != nil {
				continue
			}
			row.deadAt = &deadAt
			s.data.outbox[id] = row
		}
		return nil
	})
}
