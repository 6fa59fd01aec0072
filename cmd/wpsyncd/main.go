// Command wpsyncd is the long-running daemon: scheduled incremental syncs
// plus the webhook endpoint for push-triggered refreshes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"wpsync/internal/config"
	"wpsync/internal/publisher"
	"wpsync/internal/scheduler"
	"wpsync/internal/service"
	"wpsync/internal/source/wordpress"
	"wpsync/internal/storage/postgres"
	"wpsync/internal/webhook"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	logger := setupLogger("info")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	client := wordpress.New(wordpress.Config{
		BaseURL:        cfg.API.BaseURL,
		AuthToken:      cfg.Site.AuthToken,
		PageSize:       cfg.API.PageSize,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, logger)

	reconciler := service.NewReconciler(
		cfg.Site.ID,
		client,
		postgres.NewContentStore(db),
		postgres.NewRefDataStore(db),
		postgres.NewSyncStateStore(db),
		postgres.NewTransactionManager(db),
		pub,
		logger,
		cfg.Sync,
	)

	dispatcher := webhook.NewDispatcher(reconciler, webhook.DispatcherConfig{
		QueueSize:   cfg.Webhook.QueueSize,
		Workers:     cfg.Webhook.Workers,
		SettleDelay: cfg.Webhook.SettleDelay,
	}, logger)

	server := webhook.NewServer(cfg.Webhook.Addr, dispatcher, logger)
	sched := scheduler.NewScheduler(reconciler, cfg.Sync.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	dispatcher.Start(ctx)

	errCh := make(chan error, 2)
	go func() { errCh <- server.Start(ctx) }()
	go func() { errCh <- sched.Start(ctx) }()

	logger.Info("daemon started",
		"site_id", cfg.Site.ID,
		"interval", cfg.Sync.Interval,
		"webhook_addr", cfg.Webhook.Addr,
	)

	err = <-errCh
	cancel()
	dispatcher.Wait()

	if err != nil && err != context.Canceled {
		logger.Error("daemon stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("daemon stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
