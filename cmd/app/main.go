package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"orders/cmd"
	"orders/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	level, _ := configs.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err = run(ctx, app, configs, logger); err != nil {
		log.Fatalf("Service failed: %v", err)
	}
}

// openDatabase returns nil for the memory storage driver.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if configs.StorageDriver != cmd.StorageDriverPostgres {
		return nil, nil //nolint:nilnil // memory storage
	}
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func run(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	if configs.KafkaEnabled() {
		producer, closeWriter, err := app.CreateLifecycleProducer()
		if err != nil {
			return err
		}
		defer func() {
			if err := closeWriter(); err != nil {
				logger.Warn("Lifecycle writer close failed", "error", err)
			}
		}()

		jobManager := app.CreateJobManager(producer)
		if err = jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()

		supervisor, err := app.CreateProcessingConsumer()
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			supervisor.Run(ctx)
		}()
	} else {
		logger.Warn("KAFKA_BROKERS is empty, consumer and outbox relay are not started")
	}

	e := app.CreateEcho()
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	cancel()
	wg.Wait()
	logger.Info("Service stopped")
	return runErr
}
