package notify

import (
	"context"
	"sync"
	"time"
)

// Suppressor wraps a Notifier with a per-booth, per-kind cool-down window.
// A zero window disables suppression entirely, matching the historical
// behavior of re-alerting on every qualifying sweep.
type Suppressor struct {
	inner  Notifier
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	lastSent map[suppressKey]time.Time
}

type suppressKey struct {
	kind    string
	boothID string
}

// NewSuppressor wraps inner with the given cool-down window.
func NewSuppressor(inner Notifier, window time.Duration) *Suppressor {
	return &Suppressor{
		inner:    inner,
		window:   window,
		now:      time.Now,
		lastSent: make(map[suppressKey]time.Time),
	}
}

// allow records and permits the send unless an identical alert went out
// within the window.
func (s *Suppressor) allow(kind, boothID string) bool {
	if s.window <= 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := suppressKey{kind: kind, boothID: boothID}
	now := s.now()
	if last, ok := s.lastSent[key]; ok && now.Sub(last) < s.window {
		return false
	}
	s.lastSent[key] = now
	return true
}

func (s *Suppressor) SendHealthUpdate(ctx context.Context, a HealthUpdate) error {
	if !s.allow(KindHealthUpdate, a.BoothID) {
		return nil
	}
	return s.inner.SendHealthUpdate(ctx, a)
}

func (s *Suppressor) SendStaleAlert(ctx context.Context, a StaleAlert) error {
	if !s.allow(KindStale, a.BoothID) {
		return nil
	}
	return s.inner.SendStaleAlert(ctx, a)
}

func (s *Suppressor) SendModeAlert(ctx context.Context, a ModeAlert) error {
	if !s.allow(KindMode, a.BoothID) {
		return nil
	}
	return s.inner.SendModeAlert(ctx, a)
}
