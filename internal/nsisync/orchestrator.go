package nsisync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/marcus/nsisync/internal/models"
)

// DefaultInterval is the periodic sync interval when none is configured.
const DefaultInterval = time.Minute

// Orchestrator owns the periodic timer and exposes the public sync entry
// points. Constructed once per process; no package globals.
type Orchestrator struct {
	feed  Feed
	store Store

	// mu guards stop. A non-nil stop channel means periodic sync is
	// active; it is the single source of truth, so a manual run in
	// flight can never be mistaken for an active schedule.
	mu   sync.Mutex
	stop chan struct{}

	// runMu serializes runs: a periodic tick firing while a manual run is in
	// flight waits instead of overlapping it. Items within one run are
	// already strictly sequential.
	runMu sync.Mutex
}

// NewOrchestrator wires the feed and store into an orchestrator.
func NewOrchestrator(feed Feed, store Store) *Orchestrator {
	return &Orchestrator{feed: feed, store: store}
}

// StartPeriodic performs one immediate run and schedules repeating runs
// every interval. Calling it while already running is a no-op.
func (o *Orchestrator) StartPeriodic(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	o.mu.Lock()
	if o.stop != nil {
		o.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	o.stop = stop
	o.mu.Unlock()

	slog.Info("periodic sync started", "interval", interval)
	go o.loop(interval, stop)
}

// StopPeriodic cancels the timer. It only prevents future ticks; an
// in-flight run completes uninterrupted. Safe to call when not running.
func (o *Orchestrator) StopPeriodic() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop == nil {
		return
	}
	close(o.stop)
	o.stop = nil
	slog.Info("periodic sync stopped")
}

// IsRunning reports whether periodic sync is active.
func (o *Orchestrator) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stop != nil
}

// RunOnce performs one synchronization run. If periodic sync is stopped it
// returns an empty success immediately; this guards the race where a tick
// fires just after StopPeriodic.
func (o *Orchestrator) RunOnce(ctx context.Context) models.SyncResult {
	if !o.IsRunning() {
		return models.SyncResult{Success: true, Message: "sync is stopped"}
	}

	o.runMu.Lock()
	defer o.runMu.Unlock()
	return run(ctx, o.feed, o.store)
}

// RunManual forces exactly one run even when periodic sync is stopped. It
// never touches the schedule state, so starting or stopping periodic sync
// while a manual run is in flight behaves exactly as it would otherwise.
func (o *Orchestrator) RunManual(ctx context.Context) models.SyncResult {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	return run(ctx, o.feed, o.store)
}

// RunWarehousesOnly reconciles the warehouse feed without touching the main
// cursor. Independent of the periodic schedule.
func (o *Orchestrator) RunWarehousesOnly(ctx context.Context) models.SyncResult {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	return runWarehouses(ctx, o.feed, o.store)
}

func (o *Orchestrator) loop(interval time.Duration, stop chan struct{}) {
	o.RunOnce(context.Background())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			o.RunOnce(context.Background())
		}
	}
}
