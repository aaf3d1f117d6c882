package application

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// ClientFactory builds a fully loaded Client.
type ClientFactory func(ctx context.Context) (*Client, error)

// Refresher rebuilds the Client on an interval and publishes the newest one.
// A failed rebuild keeps serving the previous Client.
type Refresher struct {
	build    ClientFactory
	interval time.Duration
	current  atomic.Pointer[Client]
	stopChan chan struct{}
}

func NewRefresher(initial *Client, build ClientFactory, interval time.Duration) *Refresher {
	r := &Refresher{
		build:    build,
		interval: interval,
		stopChan: make(chan struct{}),
	}
	r.current.Store(initial)
	return r
}

// Current returns the most recently loaded Client.
func (r *Refresher) Current() *Client {
	return r.current.Load()
}

// Refresh rebuilds the Client once.
func (r *Refresher) Refresh(ctx context.Context) error {
	client, err := r.build(ctx)
	if err != nil {
		return err
	}
	r.current.Store(client)
	return nil
}

func (r *Refresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("Table refresher started", "interval", r.interval)

	for {
		select {
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				slog.Error("Error refreshing tables", "error", err)
			} else {
				slog.Info("Tables refreshed successfully", "loaded_at", r.Current().LoadedAt())
			}
		case <-r.stopChan:
			slog.Info("Table refresher stopped")
			return
		case <-ctx.Done():
			slog.Info("Table refresher stopped due to context cancellation")
			return
		}
	}
}

func (r *Refresher) Stop() {
	close(r.stopChan)
}
