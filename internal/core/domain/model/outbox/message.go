// Package outbox models lifecycle events waiting to be relayed to the broker.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrMessageIsNotConstructed = errors.New("outbox Message must be created via NewMessage constructor")

// Message is a pending or relayed lifecycle event. EventID is stable across relay
// attempts so consumers can deduplicate redeliveries.
type Message struct {
	id        int64
	eventID   uuid.UUID
	orderID   int64
	kind      lifecycle.Kind
	payload   []byte
	createdAt time.Time
	sentAt    *time.Time

	isConstructed bool
}

// NewMessage serializes envelope into a pending message.
func NewMessage(orderID int64, envelope lifecycle.Envelope, createdAt time.Time) (*Message, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	if envelope.Kind == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return &Message{
		eventID:       uuid.New(),
		orderID:       orderID,
		kind:          envelope.Kind,
		payload:       payload,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(
	id int64,
	eventID uuid.UUID,
	orderID int64,
	kind lifecycle.Kind,
	payload []byte,
	createdAt time.Time,
	sentAt *time.Time,
) (*Message, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	if eventID == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("eventId")
	}
	return &Message{
		id:            id,
		eventID:       eventID,
		orderID:       orderID,
		kind:          kind,
		payload:       payload,
		createdAt:     createdAt.UTC(),
		sentAt:        sentAt,
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() int64            { return m.id }
func (m *Message) EventID() uuid.UUID   { return m.eventID }
func (m *Message) OrderID() int64       { return m.orderID }
func (m *Message) Kind() lifecycle.Kind { return m.kind }
func (m *Message) Payload() []byte      { return m.payload }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) SentAt() *time.Time   { return m.sentAt }
func (m *Message) IsSent() bool         { return m.sentAt != nil }

// Envelope decodes the stored payload.
func (m *Message) Envelope() (lifecycle.Envelope, error) {
	var env lifecycle.Envelope
	if err := json.Unmarshal(m.payload, &env); err != nil {
		return lifecycle.Envelope{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return env, nil
}
