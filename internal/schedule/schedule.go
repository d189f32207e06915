package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entry is a single weekly window. Day follows time.Weekday numbering
// (0 = Sunday). Start and End are zero-padded "HH:MM" strings; an entry
// with Start > End is simply never satisfied.
type Entry struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// OperatingHours is the per-booth weekly schedule. A disabled or empty
// schedule means the booth is expected to be on at all times.
type OperatingHours struct {
	Enabled  bool    `json:"enabled"`
	Schedule []Entry `json:"schedule"`
}

// Parse decodes a serialized schedule. Callers are expected to treat a
// parse error as "always on" rather than propagating it.
func Parse(raw string) (*OperatingHours, error) {
	if raw == "" {
		return nil, nil
	}
	var hours OperatingHours
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, fmt.Errorf("malformed operating hours: %w", err)
	}
	return &hours, nil
}

// Serialize encodes the schedule for storage.
func (h *OperatingHours) Serialize() (string, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("failed to serialize operating hours: %w", err)
	}
	return string(b), nil
}

// AlwaysOn reports whether the schedule imposes no restriction.
func (h *OperatingHours) AlwaysOn() bool {
	return h == nil || !h.Enabled || len(h.Schedule) == 0
}

// IsWithin reports whether now falls inside the booth's operating hours.
// The instant is resolved to the booth's local day-of-week and "HH:MM"
// time using the supplied timezone (UTC when absent or unrecognized).
// Interval bounds are inclusive; the fixed-width "HH:MM" format makes
// plain string comparison correct.
func IsWithin(h *OperatingHours, timezone string, now time.Time) bool {
	if h.AlwaysOn() {
		return true
	}

	local := now.In(Location(timezone))
	day := int(local.Weekday())
	clock := local.Format("15:04")

	for _, entry := range h.Schedule {
		if entry.Day != day {
			continue
		}
		if clock >= entry.Start && clock <= entry.End {
			return true
		}
	}
	return false
}

// IsWithinRaw evaluates a schedule still in its stored form, applying the
// fail-open policy: unparseable data never marks a booth as off-hours.
func IsWithinRaw(raw, timezone string, now time.Time) bool {
	hours, err := Parse(raw)
	if err != nil {
		return true
	}
	return IsWithin(hours, timezone, now)
}
