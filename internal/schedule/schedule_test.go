package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2024-04-01 at the given UTC clock time.
func mondayUTC(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2024-04-01 "+clock)
	require.NoError(t, err)
	require.Equal(t, time.Monday, ts.Weekday())
	return ts
}

func TestIsWithin_AlwaysOnCases(t *testing.T) {
	now := mondayUTC(t, "03:00")

	testCases := []struct {
		name  string
		hours *OperatingHours
	}{
		{"nil schedule", nil},
		{"disabled", &OperatingHours{Enabled: false, Schedule: []Entry{{Day: 1, Start: "09:00", End: "17:00"}}}},
		{"enabled but empty", &OperatingHours{Enabled: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, IsWithin(tc.hours, "UTC", now))
		})
	}
}

func TestIsWithin_WeeklyWindow(t *testing.T) {
	hours := &OperatingHours{
		Enabled:  true,
		Schedule: []Entry{{Day: 1, Start: "09:00", End: "17:00"}},
	}

	testCases := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"inside window", mondayUTC(t, "10:00"), true},
		{"one minute early", mondayUTC(t, "08:59"), false},
		{"start bound inclusive", mondayUTC(t, "09:00"), true},
		{"end bound inclusive", mondayUTC(t, "17:00"), true},
		{"after window", mondayUTC(t, "17:01"), false},
		{"wrong day", mondayUTC(t, "10:00").AddDate(0, 0, 1), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsWithin(hours, "UTC", tc.now))
		})
	}
}

func TestIsWithin_MultipleEntriesSameDay(t *testing.T) {
	hours := &OperatingHours{
		Enabled: true,
		Schedule: []Entry{
			{Day: 1, Start: "09:00", End: "12:00"},
			{Day: 1, Start: "14:00", End: "18:00"},
		},
	}

	assert.True(t, IsWithin(hours, "UTC", mondayUTC(t, "10:00")))
	assert.False(t, IsWithin(hours, "UTC", mondayUTC(t, "13:00")))
	assert.True(t, IsWithin(hours, "UTC", mondayUTC(t, "15:30")))
}

func TestIsWithin_InvertedEntryNeverSatisfied(t *testing.T) {
	hours := &OperatingHours{
		Enabled:  true,
		Schedule: []Entry{{Day: 1, Start: "17:00", End: "09:00"}},
	}

	for _, clock := range []string{"08:00", "12:00", "18:00"} {
		assert.False(t, IsWithin(hours, "UTC", mondayUTC(t, clock)), "clock %s", clock)
	}
}

func TestIsWithin_TimezoneResolution(t *testing.T) {
	hours := &OperatingHours{
		Enabled:  true,
		Schedule: []Entry{{Day: 1, Start: "09:00", End: "17:00"}},
	}

	// Monday 14:00 UTC is Monday 09:00 in New York (EST, UTC-5).
	janMonday, err := time.Parse("2006-01-02 15:04", "2024-01-08 14:00")
	require.NoError(t, err)
	require.Equal(t, time.Monday, janMonday.Weekday())

	assert.True(t, IsWithin(hours, "America/New_York", janMonday))
	// Same instant evaluated against a Windows-style zone name.
	assert.True(t, IsWithin(hours, "Eastern Standard Time", janMonday))
	// Monday 02:00 UTC is still Sunday evening in New York.
	earlyMonday := mondayUTC(t, "02:00")
	assert.False(t, IsWithin(hours, "America/New_York", earlyMonday))
}

func TestIsWithin_Deterministic(t *testing.T) {
	hours := &OperatingHours{
		Enabled:  true,
		Schedule: []Entry{{Day: 1, Start: "09:00", End: "17:00"}},
	}
	now := mondayUTC(t, "10:00")

	first := IsWithin(hours, "UTC", now)
	second := IsWithin(hours, "UTC", now)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestIsWithinRaw_FailsOpen(t *testing.T) {
	now := mondayUTC(t, "03:00")

	assert.True(t, IsWithinRaw("", "UTC", now))
	assert.True(t, IsWithinRaw("{not json", "UTC", now))
	assert.False(t, IsWithinRaw(`{"enabled":true,"schedule":[{"day":1,"start":"09:00","end":"17:00"}]}`, "UTC", now))
}

func TestParseSerializeRoundTrip(t *testing.T) {
	hours := &OperatingHours{
		Enabled:  true,
		Schedule: []Entry{{Day: 3, Start: "08:30", End: "20:00"}},
	}

	raw, err := hours.Serialize()
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, hours, parsed)
}

func TestNormalizeTimezone(t *testing.T) {
	assert.Equal(t, "America/New_York", NormalizeTimezone("Eastern Standard Time"))
	assert.Equal(t, "Asia/Tokyo", NormalizeTimezone("Tokyo Standard Time"))
	assert.Equal(t, "Europe/Berlin", NormalizeTimezone("Europe/Berlin"))
	assert.Equal(t, "UTC", NormalizeTimezone("Middle Earth Standard Time"))
	assert.Equal(t, "UTC", NormalizeTimezone(""))
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location("Not/AZone"))
}
