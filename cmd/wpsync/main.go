// Command wpsync runs one batch sync against the configured site and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"wpsync/internal/config"
	"wpsync/internal/domain"
	"wpsync/internal/publisher"
	"wpsync/internal/service"
	"wpsync/internal/source/wordpress"
	"wpsync/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	siteID := flag.Int64("site", 0, "override the configured site id")
	full := flag.Bool("full", false, "ignore watermarks and reload everything")
	purge := flag.Bool("purge", false, "delete local data first (requires -full)")
	modifiedAfter := flag.String("modified-after", "", "only items modified after this RFC3339 time")
	typeFilter := flag.String("type", "all", "what to sync: all, ref_data, post, page, attachment")
	status := flag.String("status", "publish", "remote status filter: publish, private, draft, pending, future, trash, any")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	if *siteID != 0 {
		cfg.Site.ID = *siteID
	}

	opts := domain.RunOptions{
		Full:   *full,
		Purge:  *purge,
		Type:   domain.TypeFilter(*typeFilter),
		Status: domain.Status(*status),
	}
	if *modifiedAfter != "" {
		t, err := time.Parse(time.RFC3339, *modifiedAfter)
		if err != nil {
			logger.Error("invalid -modified-after value", "error", err)
			os.Exit(1)
		}
		opts.ModifiedAfter = &t
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	report, err := reconciler.Run(ctx, opts)
	if err != nil {
		logger.Error("sync run failed", "error", err)
		os.Exit(1)
	}

	printReport(report)

	if report.Failed() {
		os.Exit(1)
	}
}

func printReport(report *domain.RunReport) {
	fmt.Printf("site %d, took %s\n", report.SiteID, report.Duration.Round(time.Millisecond))
	for _, kind := range domain.RefTypes {
		stats, ok := report.RefData[kind]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s loaded=%d skipped=%d failed=%d pages=%d",
			kind, stats.Created, stats.Skipped, stats.Failed, stats.Pages)
		if stats.Err != nil {
			fmt.Printf(" error=%v", stats.Err)
		}
		fmt.Println()
	}
	for _, ct := range domain.ContentTypes {
		stats, ok := report.Content[ct]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s created=%d updated=%d skipped=%d failed=%d pages=%d",
			ct, stats.Created, stats.Updated, stats.Skipped, stats.Failed, stats.Pages)
		if stats.Err != nil {
			fmt.Printf(" error=%v", stats.Err)
		}
		fmt.Println()
	}
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
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
