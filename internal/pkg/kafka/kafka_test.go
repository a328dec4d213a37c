package kafka_test

import (
	"testing"

	"orders/internal/pkg/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_ParsesBrokerList(t *testing.T) {
	c := kafka.NewClient(" broker-1:9092, ,broker-2:9092 ")

	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, c.Brokers)
	assert.True(t, c.Enabled())
}

func TestClient_Disabled(t *testing.T) {
	c := kafka.NewClient("")
	assert.False(t, c.Enabled())

	_, err := c.NewWriter("order-lifecycle")
	require.ErrorIs(t, err, kafka.ErrDisabled)

	_, err = c.NewGroupReader("order-processing", "orders")
	require.ErrorIs(t, err, kafka.ErrDisabled)
}

func TestClient_NewWriter(t *testing.T) {
	w, err := kafka.NewClient("localhost:9092").NewWriter("order-lifecycle")
	require.NoError(t, err)
	assert.Equal(t, "order-lifecycle", w.Topic)
}
