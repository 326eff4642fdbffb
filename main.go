package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kassa/internal/config"
	"kassa/internal/database"
	"kassa/internal/logging"
	"kassa/internal/server"
	"kassa/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	deps := server.GORMDependencies(cfg, logger, db)
	deps.AccessLog = true

	mqClient, err := connectBroker(cfg.RabbitMQ, logger)
	if err != nil {
		return err
	}
	if mqClient != nil {
		defer mqClient.Close()
		deps.Publisher = mqClient
		if cfg.RabbitMQ.Consume {
			consumeProductEvents(mqClient, logger)
		}
	}

	app, _ := server.NewApp(deps)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		listenErr <- app.Listen(cfg.App.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
	return nil
}

// connectBroker returns a nil client when no broker is configured.
func connectBroker(cfg config.RabbitMQConfig, logger *zap.Logger) (*rabbitmq.Client, error) {
	if cfg.URL == "" {
		logger.Info("RABBITMQ_URL not set, product events are disabled")
		return nil, nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.URL, Queue: cfg.Queue}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
	}
	return client, nil
}

func consumeProductEvents(client *rabbitmq.Client, logger *zap.Logger) {
	logger.Info("Starting RabbitMQ consumer for product events")
	err := client.ConsumeProductEvents(func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeEvent(msg)
		if err != nil {
			// Undecodable bodies would be redelivered forever.
			logger.Warn("Dropping malformed product event", zap.Error(err))
			return nil
		}
		logger.Info("Received product event", zap.Uint64("tag", msg.DeliveryTag), zap.Any("event", event))
		return nil
	})
	if err != nil {
		logger.Error("Failed to start RabbitMQ consumer", zap.Error(err))
	}
}
