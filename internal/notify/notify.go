// Package notify delivers structured booth alerts to the configured
// channels. Delivery is best effort: a failing channel is logged and never
// surfaced to the ingestion or sweep paths.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Alert payload kinds, used for suppression keying and logging.
const (
	KindHealthUpdate = "health_update"
	KindStale        = "stale"
	KindMode         = "non_normal_mode"
)

// HealthUpdate is the immediate alert fired when a ping reports an error
// or warning status.
type HealthUpdate struct {
	BoothID   string
	Name      string
	Status    string
	Message   string
	CreatedAt time.Time
}

// StaleAlert is emitted by the stale sweep for a booth that went silent
// during its operating hours.
type StaleAlert struct {
	BoothID              string
	Name                 string
	LastPing             time.Time
	MinutesSinceLastPing int
}

// ModeAlert is emitted by the mode sweep for a booth lingering in a
// non-normal operating mode.
type ModeAlert struct {
	BoothID     string
	Name        string
	Mode        string
	HoursInMode float64
}

// Notifier is the outbound alert collaborator.
type Notifier interface {
	SendHealthUpdate(ctx context.Context, a HealthUpdate) error
	SendStaleAlert(ctx context.Context, a StaleAlert) error
	SendModeAlert(ctx context.Context, a ModeAlert) error
}

// Fanout forwards every alert to all configured channels. Channel
// failures are logged and do not stop delivery to the remaining channels;
// Fanout itself never returns an error.
type Fanout struct {
	channels []Notifier
	log      *zap.SugaredLogger
}

// NewFanout creates a fan-out notifier over the given channels.
func NewFanout(log *zap.SugaredLogger, channels ...Notifier) *Fanout {
	return &Fanout{channels: channels, log: log}
}

func (f *Fanout) SendHealthUpdate(ctx context.Context, a HealthUpdate) error {
	for _, ch := range f.channels {
		if err := ch.SendHealthUpdate(ctx, a); err != nil {
			f.log.Errorw("health update notification failed", "booth", a.BoothID, "error", err)
		}
	}
	return nil
}

func (f *Fanout) SendStaleAlert(ctx context.Context, a StaleAlert) error {
	for _, ch := range f.channels {
		if err := ch.SendStaleAlert(ctx, a); err != nil {
			f.log.Errorw("stale alert notification failed", "booth", a.BoothID, "error", err)
		}
	}
	return nil
}

func (f *Fanout) SendModeAlert(ctx context.Context, a ModeAlert) error {
	for _, ch := range f.channels {
		if err := ch.SendModeAlert(ctx, a); err != nil {
			f.log.Errorw("mode alert notification failed", "booth", a.BoothID, "error", err)
		}
	}
	return nil
}
