package kafka_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	adapter "orders/internal/adapters/out/kafka"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func newProducer(writer adapter.MessageWriter) (*adapter.LifecycleProducer, *metrics.Metrics) {
	m := metrics.Nop()
	return adapter.NewLifecycleProducer(writer, "order-lifecycle", m, slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func TestLifecycleProducer_PublishOrderCreated(t *testing.T) {
	ctx := t.Context()
	writer := new(MockMessageWriter)
	producer, m := newProducer(writer)

	eventID := uuid.New()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := producer.PublishOrderCreated(ctx, eventID, lifecycle.OrderCreated{OrderID: 42, CreatedAt: createdAt})
	require.NoError(t, err)

	require.Len(t, written, 1)
	msg := written[0]
	assert.JSONEq(t, `{"order_id":42}`, string(msg.Key))
	assert.JSONEq(t,
		`{"kind":"order_created","order_created":{"order_id":42,"created_at":"2024-05-01T10:00:00Z"}}`,
		string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, adapter.EventIDHeader, msg.Headers[0].Key)
	assert.Equal(t, eventID.String(), string(msg.Headers[0].Value))

	assert.InDelta(t, 1, testutil.ToFloat64(m.Deliveries.WithLabelValues("order_created", metrics.ResultOK)), 0)
	writer.AssertExpectations(t)
}

func TestLifecycleProducer_PublishOrderProcessingStarted(t *testing.T) {
	ctx := t.Context()
	writer := new(MockMessageWriter)
	producer, _ := newProducer(writer)

	startedAt := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)

	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := producer.PublishOrderProcessingStarted(ctx, uuid.New(),
		lifecycle.OrderProcessingStarted{OrderID: 42, StartedAt: startedAt})
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.JSONEq(t,
		`{"kind":"order_processing_started","order_processing_started":{"order_id":42,"started_at":"2024-05-01T11:00:00Z"}}`,
		string(written[0].Value))
}

func TestLifecycleProducer_DeliveryFailure(t *testing.T) {
	ctx := t.Context()
	writer := new(MockMessageWriter)
	producer, m := newProducer(writer)

	cause := errors.New("leader not available")
	writer.On("WriteMessages", ctx, mock.Anything).Return(cause).Once()

	err := producer.PublishOrderCreated(ctx, uuid.New(), lifecycle.OrderCreated{OrderID: 1, CreatedAt: time.Now()})

	var deliveryErr *errs.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "order-lifecycle", deliveryErr.Topic)
	require.ErrorIs(t, err, cause)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Deliveries.WithLabelValues("order_created", metrics.ResultFailed)), 0)
}
