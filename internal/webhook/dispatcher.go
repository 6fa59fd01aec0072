package webhook

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wpsync/internal/service"
)

// Refresher pulls one item from the remote and writes it through.
type Refresher interface {
	RefreshPost(ctx context.Context, remoteID int64) (*service.RefreshResult, error)
}

// Dispatcher decouples webhook handlers from refresh work. Handlers enqueue
// the pushed remote ID and return immediately; a fixed worker pool drains the
// queue. A full queue drops the push, the next scheduled sync picks the item
// up anyway.
type Dispatcher struct {
	refresher   Refresher
	queue       chan int64
	workers     int
	settleDelay time.Duration
	logger      *slog.Logger

	wg sync.WaitGroup
}

type DispatcherConfig struct {
	QueueSize   int
	Workers     int
	SettleDelay time.Duration
}

func NewDispatcher(refresher Refresher, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		refresher:   refresher,
		queue:       make(chan int64, cfg.QueueSize),
		workers:     cfg.Workers,
		settleDelay: cfg.SettleDelay,
		logger:      logger,
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
	d.logger.Info("webhook dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Wait blocks until all workers have exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a pushed remote ID to the pool without blocking. It reports
// whether the ID was accepted.
func (d *Dispatcher) Enqueue(remoteID int64) bool {
	select {
	case d.queue <- remoteID:
		return true
	default:
		d.logger.Warn("webhook queue full, dropping push", "wp_id", remoteID)
		return false
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case remoteID := <-d.queue:
			d.process(ctx, remoteID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, remoteID int64) {
	// The push often arrives before the change is readable through the
	// API; waiting briefly avoids refreshing a stale payload.
	if d.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.settleDelay):
		}
	}

	refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	result, err := d.refresher.RefreshPost(refreshCtx, remoteID)
	if err != nil {
		d.logger.Error("push refresh failed", "wp_id", remoteID, "error", err)
		return
	}
	if result.Missing {
		return
	}
	d.logger.Info("push refresh done", "wp_id", remoteID, "created", result.Created)
}
