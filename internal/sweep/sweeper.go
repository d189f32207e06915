// Package sweep runs the periodic fleet-wide alerting passes: stale-booth
// detection, non-normal-mode detection, and health-log retention.
package sweep

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"booth-status-backend/config"
	"booth-status-backend/internal/model"
	"booth-status-backend/internal/notify"
	"booth-status-backend/internal/schedule"
	"booth-status-backend/internal/status"
	"booth-status-backend/internal/store"
)

// Coordinator owns the sweep timers and applies the status rules across
// the whole fleet. All collaborators are injected; the clock is a field so
// tests can pin it.
type Coordinator struct {
	cfg      config.AlertingConfig
	store    store.Store
	notifier notify.Notifier
	log      *zap.SugaredLogger
	now      func() time.Time

	staleRunning   atomic.Bool
	modeRunning    atomic.Bool
	cleanupRunning atomic.Bool
}

// NewCoordinator creates the sweep coordinator.
func NewCoordinator(cfg config.AlertingConfig, s store.Store, notifier notify.Notifier, log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		store:    s,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, firing each sweep on its own
// interval. Each pass runs on its own goroutine so a slow sweep never
// delays the others; the per-sweep guard keeps a slow pass from
// overlapping itself.
func (c *Coordinator) Run(ctx context.Context) {
	c.log.Infow("sweep coordinator starting",
		"stale_interval", c.cfg.StaleSweepInterval,
		"mode_interval", c.cfg.ModeSweepInterval,
		"retention_interval", c.cfg.RetentionInterval)

	staleTicker := time.NewTicker(c.cfg.StaleSweepInterval)
	modeTicker := time.NewTicker(c.cfg.ModeSweepInterval)
	cleanupTicker := time.NewTicker(c.cfg.RetentionInterval)
	defer staleTicker.Stop()
	defer modeTicker.Stop()
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("sweep coordinator shutting down")
			return
		case <-staleTicker.C:
			go c.CheckStaleBooths(ctx)
		case <-modeTicker.C:
			go c.CheckNonNormalModes(ctx)
		case <-cleanupTicker.C:
			go c.CleanupOldHealthLogs(ctx)
		}
	}
}

// CheckStaleBooths alerts for every booth that went silent past the
// staleness threshold while inside its operating hours. A booth silent
// outside its hours is expectedly offline and is left alone.
func (c *Coordinator) CheckStaleBooths(ctx context.Context) {
	if !c.staleRunning.CompareAndSwap(false, true) {
		c.log.Warn("stale sweep still running, skipping this pass")
		return
	}
	defer c.staleRunning.Store(false)

	now := c.now()
	booths, err := c.store.ListStaleBooths(ctx, now.Add(-c.cfg.StaleThreshold))
	if err != nil {
		c.log.Errorw("stale sweep failed to list booths", "error", err)
		return
	}

	for _, booth := range booths {
		if !schedule.IsWithinRaw(booth.OperatingHours, booth.Timezone, now) {
			continue
		}

		minutes := int(now.Sub(booth.LastPing).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		c.log.Warnw("stale booth detected", "booth", booth.BoothID, "minutes", minutes)

		if err := c.notifier.SendStaleAlert(ctx, notify.StaleAlert{
			BoothID:              booth.BoothID,
			Name:                 booth.Name,
			LastPing:             booth.LastPing,
			MinutesSinceLastPing: minutes,
		}); err != nil {
			c.log.Errorw("stale alert failed", "booth", booth.BoothID, "error", err)
		}
	}
}

// CheckNonNormalModes alerts for every booth whose reported mode has been
// non-normal for longer than the configured threshold. The duration is
// recomputed from the retained log history on every pass.
func (c *Coordinator) CheckNonNormalModes(ctx context.Context) {
	if !c.modeRunning.CompareAndSwap(false, true) {
		c.log.Warn("mode sweep still running, skipping this pass")
		return
	}
	defer c.modeRunning.Store(false)

	now := c.now()
	booths, err := c.store.ListBooths(ctx)
	if err != nil {
		c.log.Errorw("mode sweep failed to list booths", "error", err)
		return
	}

	for _, booth := range booths {
		c.checkBoothMode(ctx, booth, now)
	}
}

func (c *Coordinator) checkBoothMode(ctx context.Context, booth model.Booth, now time.Time) {
	logs, err := c.store.ListHealthLogs(ctx, booth.ID)
	if err != nil {
		c.log.Errorw("mode sweep failed to load history", "booth", booth.BoothID, "error", err)
		return
	}
	if len(logs) == 0 {
		return
	}

	mode := logs[0].Mode()
	hours, ok := status.HoursInMode(logs, mode, now)
	if !ok || hours < c.cfg.ModeThreshold.Hours() {
		return
	}

	c.log.Warnw("booth lingering in non-normal mode", "booth", booth.BoothID, "mode", mode, "hours", hours)
	if err := c.notifier.SendModeAlert(ctx, notify.ModeAlert{
		BoothID:     booth.BoothID,
		Name:        booth.Name,
		Mode:        mode,
		HoursInMode: hours,
	}); err != nil {
		c.log.Errorw("mode alert failed", "booth", booth.BoothID, "error", err)
	}
}

// CleanupOldHealthLogs purges history older than the retention window.
// The mode sweep's full-history scan stays bounded by this cap.
func (c *Coordinator) CleanupOldHealthLogs(ctx context.Context) {
	if !c.cleanupRunning.CompareAndSwap(false, true) {
		return
	}
	defer c.cleanupRunning.Store(false)

	cutoff := c.now().Add(-c.cfg.Retention)
	deleted, err := c.store.DeleteHealthLogsOlderThan(ctx, cutoff)
	if err != nil {
		c.log.Errorw("retention sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		c.log.Infow("purged old health logs", "count", deleted)
	}
}
