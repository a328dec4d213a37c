package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	consumer "orders/internal/adapters/in/kafka"
	"orders/internal/core/domain/model/processing"
	"orders/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecodeProcessingMessage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		key, event, err := consumer.DecodeProcessingMessage(kafka.Message{
			Key: []byte(`{"order_id":42}`),
			Value: []byte(`{"kind":"packing_finished","occurred_at":"2024-05-01T12:00:00+02:00",` +
				`"successful":false,"failure_reason":"damaged"}`),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), key.OrderID)
		assert.Equal(t, processing.KindPackingFinished, event.Kind)
		assert.True(t, event.OccurredAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
		assert.Equal(t, time.UTC, event.OccurredAt.Location())
		assert.False(t, event.Successful)
		assert.Equal(t, "damaged", event.FailureReason)
	})

	tests := map[string]kafka.Message{
		"malformed key":   {Key: []byte(`42`), Value: []byte(`{"kind":"packing_started"}`)},
		"missing id":      {Key: []byte(`{}`), Value: []byte(`{"kind":"packing_started"}`)},
		"malformed value": {Key: []byte(`{"order_id":1}`), Value: []byte(`{`)},
		"missing kind":    {Key: []byte(`{"order_id":1}`), Value: []byte(`{"successful":true}`)},
	}
	for name, msg := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := consumer.DecodeProcessingMessage(msg)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, orderID int64, event processing.Event) error {
	args := m.Called(ctx, orderID, event)
	return args.Error(0)
}

func TestProcessingBatchHandler_StopsAtFirstError(t *testing.T) {
	ctx := t.Context()
	events := new(MockEventHandler)
	handler := consumer.NewProcessingBatchHandler(events)

	first := processing.Event{Kind: processing.KindPackingStarted}
	second := processing.Event{Kind: processing.KindDeliveryFinished, Successful: true}
	third := processing.Event{Kind: processing.KindPackingStarted}
	cause := errors.New("database unavailable")

	mock.InOrder(
		events.On("Handle", ctx, int64(1), first).Return(nil).Once(),
		events.On("Handle", ctx, int64(2), second).Return(cause).Once(),
	)

	err := handler.HandleBatch(ctx, []consumer.Message[consumer.OrderKey, processing.Event]{
		{Key: consumer.OrderKey{OrderID: 1}, Value: first, Offset: 10},
		{Key: consumer.OrderKey{OrderID: 2}, Value: second, Offset: 11},
		{Key: consumer.OrderKey{OrderID: 3}, Value: third, Offset: 12},
	})

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "offset 11")
	events.AssertExpectations(t)
	events.AssertNotCalled(t, "Handle", ctx, int64(3), third)
}
