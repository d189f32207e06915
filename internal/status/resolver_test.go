package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func TestResolve_Precedence(t *testing.T) {
	testCases := []struct {
		name     string
		in       Input
		expected string
	}{
		{
			name: "maintenance wins even when stale and within hours",
			in: Input{
				LastPing:     testNow.Add(-2 * time.Hour),
				LatestStatus: StatusHealthy,
				LatestMode:   ModeMaintenance,
				WithinHours:  true,
				Threshold:    15 * time.Minute,
			},
			expected: StatusMaintenance,
		},
		{
			name: "outside hours is expected offline, not stale",
			in: Input{
				LastPing:     testNow.Add(-2 * time.Hour),
				LatestStatus: StatusHealthy,
				WithinHours:  false,
				Threshold:    15 * time.Minute,
			},
			expected: StatusOffline,
		},
		{
			name: "stale within hours",
			in: Input{
				LastPing:     testNow.Add(-20 * time.Minute),
				LatestStatus: StatusHealthy,
				WithinHours:  true,
				Threshold:    15 * time.Minute,
			},
			expected: StatusStale,
		},
		{
			name: "fresh booth passes raw status through",
			in: Input{
				LastPing:     testNow.Add(-2 * time.Minute),
				LatestStatus: StatusWarning,
				WithinHours:  true,
				Threshold:    15 * time.Minute,
			},
			expected: StatusWarning,
		},
		{
			name: "no log at all",
			in: Input{
				LastPing:    testNow.Add(-2 * time.Minute),
				WithinHours: true,
				Threshold:   15 * time.Minute,
			},
			expected: StatusUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Resolve(tc.in, testNow)
			assert.Equal(t, tc.expected, d.Status)
		})
	}
}

func TestResolve_MinutesSinceLastPing(t *testing.T) {
	d := Resolve(Input{
		LastPing:    testNow.Add(-150 * time.Second),
		WithinHours: true,
		Threshold:   15 * time.Minute,
	}, testNow)
	assert.Equal(t, 2, d.MinutesSinceLastPing) // floor of 2.5

	// Clock skew producing a future lastPing must not go negative.
	d = Resolve(Input{
		LastPing:    testNow.Add(90 * time.Second),
		WithinHours: true,
		Threshold:   15 * time.Minute,
	}, testNow)
	assert.Equal(t, 0, d.MinutesSinceLastPing)
	assert.False(t, d.IsStale)
}

func TestResolve_ModeDefaultsToUnknown(t *testing.T) {
	d := Resolve(Input{
		LastPing:    testNow,
		WithinHours: true,
		Threshold:   15 * time.Minute,
	}, testNow)
	assert.Equal(t, ModeUnknown, d.Mode)
}

func TestHasIssue(t *testing.T) {
	testCases := []struct {
		name     string
		derived  Derived
		expected bool
	}{
		{"stale within hours", Derived{Status: StatusStale, IsStale: true, WithinOperatingHours: true}, true},
		{"stale outside hours is expected offline", Derived{Status: StatusOffline, IsStale: true, WithinOperatingHours: false}, false},
		{"error always flags", Derived{Status: StatusError, WithinOperatingHours: false}, true},
		{"warning within hours", Derived{Status: StatusWarning, WithinOperatingHours: true}, true},
		{"warning outside hours", Derived{Status: StatusWarning, WithinOperatingHours: false}, false},
		{"healthy", Derived{Status: StatusHealthy, WithinOperatingHours: true}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.derived.HasIssue())
		})
	}
}
