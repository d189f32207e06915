package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recorder counts alert deliveries per kind.
type recorder struct {
	health []HealthUpdate
	stale  []StaleAlert
	mode   []ModeAlert
	err    error
}

func (r *recorder) SendHealthUpdate(_ context.Context, a HealthUpdate) error {
	r.health = append(r.health, a)
	return r.err
}

func (r *recorder) SendStaleAlert(_ context.Context, a StaleAlert) error {
	r.stale = append(r.stale, a)
	return r.err
}

func (r *recorder) SendModeAlert(_ context.Context, a ModeAlert) error {
	r.mode = append(r.mode, a)
	return r.err
}

func TestFanout_ContinuesPastFailingChannel(t *testing.T) {
	failing := &recorder{err: errors.New("channel down")}
	healthy := &recorder{}
	fanout := NewFanout(zap.NewNop().Sugar(), failing, healthy)

	err := fanout.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-1"})
	require.NoError(t, err)

	assert.Len(t, failing.stale, 1)
	assert.Len(t, healthy.stale, 1)
}

func TestSuppressor_ZeroWindowPassesEverything(t *testing.T) {
	inner := &recorder{}
	s := NewSuppressor(inner, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-1"}))
	}
	assert.Len(t, inner.stale, 3)
}

func TestSuppressor_HoldsDuplicatesWithinWindow(t *testing.T) {
	inner := &recorder{}
	s := NewSuppressor(inner, 30*time.Minute)

	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-1"}))
	require.NoError(t, s.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-1"}))
	assert.Len(t, inner.stale, 1, "duplicate within window must be held")

	// A different booth and a different kind are independent keys.
	require.NoError(t, s.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-2"}))
	require.NoError(t, s.SendModeAlert(context.Background(), ModeAlert{BoothID: "booth-1"}))
	assert.Len(t, inner.stale, 2)
	assert.Len(t, inner.mode, 1)

	// Once the window elapses, the same alert goes through again.
	now = now.Add(31 * time.Minute)
	require.NoError(t, s.SendStaleAlert(context.Background(), StaleAlert{BoothID: "booth-1"}))
	assert.Len(t, inner.stale, 3)
}
