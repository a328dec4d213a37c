package cmd

import (
	"log/slog"

	consumer "orders/internal/adapters/in/kafka"
	"orders/internal/adapters/in/http"
	producer "orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/memory"
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/eventhandlers"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/processing"
	"orders/internal/core/ports"
	"orders/internal/jobs"
	"orders/internal/pkg/kafka"
	"orders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	reads      ports.UnitOfWork
	kafka      *kafka.Client
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the Postgres adapter when gormDB is set and the in-memory
// store otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	var factory ports.UnitOfWorkFactory
	if gormDB != nil {
		factory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		factory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	registry := prometheus.NewRegistry()
	return &CompositionRoot{
		cfg:        cfg,
		uowFactory: factory,
		// A unit of work that is never begun reads outside any transaction.
		reads:    factory.Create(),
		kafka:    kafka.NewClient(cfg.KafkaBrokers),
		registry: registry,
		metrics:  metrics.New(registry),
		logger:   logger,
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	return commands.NewAddItemCommandHandler(c.orderItemUoWFactory())
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.orderItemUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStateCommandHandler() commands.ChangeOrderStateCommandHandler {
	return commands.NewChangeOrderStateCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordProcessingStepCommandHandler() commands.RecordProcessingStepCommandHandler {
	var f commands.HistoryUoWFactory = FuncHistoryUoWFactory(func() commands.HistoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordProcessingStepCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(p ports.LifecycleProducer) commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, p)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.reads.OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.reads.HistoryRepository())
}

func (c *CompositionRoot) CreateSearchProductsQueryHandler() queries.SearchProductsQueryHandler {
	return queries.NewSearchProductsQueryHandler(c.reads.ProductRepository())
}

func (c *CompositionRoot) CreateProcessingEventHandler() *eventhandlers.ProcessingEventHandler {
	changeState := c.CreateChangeOrderStateCommandHandler()
	recordStep := c.CreateRecordProcessingStepCommandHandler()
	return eventhandlers.NewProcessingEventHandler(&changeState, &recordStep, c.logger)
}

// CreateEcho builds the HTTP application with every API route, /health and /metrics.
func (c *CompositionRoot) CreateEcho() *echo.Echo {
	server := http.NewServer(http.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AddItem:          c.CreateAddItemCommandHandler(),
		RemoveItem:       c.CreateRemoveItemCommandHandler(),
		ChangeOrderState: c.CreateChangeOrderStateCommandHandler(),
		CreateProduct:    c.CreateCreateProductCommandHandler(),
		SearchOrders:     c.CreateSearchOrdersQueryHandler(),
		GetOrderHistory:  c.CreateGetOrderHistoryQueryHandler(),
		SearchProducts:   c.CreateSearchProductsQueryHandler(),
	}, c.logger)
	return http.NewEcho(server, c.metrics, c.registry)
}

// CreateLifecycleProducer returns the producer and a close function for its writer.
// It fails with kafka.ErrDisabled when no brokers are configured.
func (c *CompositionRoot) CreateLifecycleProducer() (*producer.LifecycleProducer, func() error, error) {
	writer, err := c.kafka.NewWriter(c.cfg.KafkaLifecycleTopic)
	if err != nil {
		return nil, nil, err
	}
	return producer.NewLifecycleProducer(writer, c.cfg.KafkaLifecycleTopic, c.metrics, c.logger), writer.Close, nil
}

// CreateJobManager schedules the outbox relay over p.
func (c *CompositionRoot) CreateJobManager(p ports.LifecycleProducer) *jobs.JobManager {
	relay := c.CreateRelayOutboxCommandHandler(p)
	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(&relay, c.cfg.OutboxSchedule, c.cfg.OutboxBatchSize, c.metrics, c.logger),
	)
}

// CreateProcessingConsumer consumes the processing topic with the configured consumer group.
func (c *CompositionRoot) CreateProcessingConsumer() (*consumer.Supervisor[consumer.OrderKey, processing.Event], error) {
	if !c.kafka.Enabled() {
		return nil, kafka.ErrDisabled
	}
	newReader := func() (consumer.MessageReader, error) {
		reader, err := c.kafka.NewGroupReader(c.cfg.KafkaProcessingTopic, c.cfg.KafkaConsumerGroup)
		if err != nil {
			return nil, err
		}
		return reader, nil
	}
	return consumer.NewSupervisor(
		newReader,
		consumer.DecodeProcessingMessage,
		consumer.NewProcessingBatchHandler(c.CreateProcessingEventHandler()),
		consumer.Config{
			MaxBatchSize: c.cfg.ConsumerMaxBatchSize,
			MaxBatchWait: c.cfg.ConsumerMaxBatchWait,
			PollTimeout:  c.cfg.ConsumerPollTimeout,
		},
		c.cfg.ConsumerRestartBackoff,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderItemUoWFactory() commands.OrderItemUoWFactory {
	return FuncOrderItemUoWFactory(func() commands.OrderItemUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderItemUoWFactory func() commands.OrderItemUoW

func (f FuncOrderItemUoWFactory) Create() commands.OrderItemUoW {
	return f()
}

type FuncHistoryUoWFactory func() commands.HistoryUoW

func (f FuncHistoryUoWFactory) Create() commands.HistoryUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
