package daemon

import (
	"context"
	"time"

	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
)

// WindowLister returns the windows that currently exist on the display.
type WindowLister func() ([]platform.WindowHandle, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *logging.Logger
}

// Reconciler periodically drops tracked windows whose destroy notification
// was never seen.
type Reconciler struct {
	interval    time.Duration
	tracker     *WindowTracker
	listWindows WindowLister
	logger      *logging.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, tracker *WindowTracker, listWindows WindowLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Reconciler{
		interval:    interval,
		tracker:     tracker,
		listWindows: listWindows,
		logger:      logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass and returns the number of
// windows it dropped.
func (r *Reconciler) reconcile() (dropped int) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", nil, "panic", err)
		}
	}()

	tracked := r.tracker.Windows()
	if len(tracked) == 0 {
		return 0
	}

	actual, err := r.listWindows()
	if err != nil {
		r.logger.Error("reconciler: failed to list windows", err)
		return 0
	}

	present := make(map[platform.WindowHandle]bool, len(actual))
	for _, h := range actual {
		present[h] = true
	}

	for _, w := range tracked {
		if present[w.Handle] {
			continue
		}
		r.logger.Info("reconciler: stale window detected", "window", w.Handle, "name", w.Name)
		r.tracker.HandleWindowClosed(w.Handle)
		dropped++
	}
	return dropped
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() int {
	return r.reconcile()
}
