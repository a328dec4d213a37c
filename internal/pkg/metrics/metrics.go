// Package metrics holds the Prometheus collectors of the engine. Collectors are registered
// on an injected Registerer so tests can use a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orders"

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

type Metrics struct {
	ConsumerBatches  *prometheus.CounterVec
	ConsumedMessages prometheus.Counter
	SkippedMessages  prometheus.Counter
	BatchSize        prometheus.Histogram

	Deliveries    *prometheus.CounterVec
	OutboxRelayed prometheus.Counter

	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. It panics if a collector is
// already registered there.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConsumerBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "batches_total",
			Help:      "Consumed batches by handler result.",
		}, []string{"result"}),
		ConsumedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "messages_total",
			Help:      "Messages fetched from the broker.",
		}),
		SkippedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "skipped_messages_total",
			Help:      "Messages dropped because they could not be decoded.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "batch_size",
			Help:      "Decoded messages per flushed batch.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "producer",
			Name:      "deliveries_total",
			Help:      "Lifecycle events published by kind and result.",
		}, []string{"kind", "result"}),
		OutboxRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relayed_total",
			Help:      "Outbox messages relayed and marked sent.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}

	reg.MustRegister(
		m.ConsumerBatches,
		m.ConsumedMessages,
		m.SkippedMessages,
		m.BatchSize,
		m.Deliveries,
		m.OutboxRelayed,
		m.Requests,
		m.LatencyMS,
	)
	return m
}

// Nop returns collectors registered on a throwaway registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveBatch(size int, err error) {
	m.ConsumerBatches.WithLabelValues(result(err)).Inc()
	m.BatchSize.Observe(float64(size))
}

func (m *Metrics) ObserveDelivery(kind string, err error) {
	m.Deliveries.WithLabelValues(kind, result(err)).Inc()
}

func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Microseconds()) / 1000)
}

// Handler serves every collector gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultOK
}
