package status

import "time"

// Display statuses derived for a booth. Raw ping statuses pass through
// unchanged when none of the derived conditions apply.
const (
	StatusHealthy     = "healthy"
	StatusWarning     = "warning"
	StatusError       = "error"
	StatusOffline     = "offline"
	StatusStale       = "stale"
	StatusMaintenance = "maintenance"
	StatusUnknown     = "unknown"
)

// Reported operating modes with dedicated handling.
const (
	ModeNormal      = "Normal"
	ModeUnknown     = "Unknown"
	ModeMaintenance = "Maintenance"
)

// Derived is the computed view of a booth. It is never persisted; it is
// recomputed from the booth row, its latest log, and the wall clock.
type Derived struct {
	Status               string
	Mode                 string
	IsStale              bool
	WithinOperatingHours bool
	MinutesSinceLastPing int
}

// Input carries everything Resolve needs about one booth.
type Input struct {
	LastPing     time.Time
	LatestStatus string // Raw status of the newest health log, "" when no log exists
	LatestMode   string // Mode of the newest health log, "" when absent
	WithinHours  bool
	Threshold    time.Duration
}

// Resolve derives the display status for a booth. Precedence, first match
// wins: maintenance mode, outside operating hours (expected offline),
// stale, then the raw reported status.
func Resolve(in Input, now time.Time) Derived {
	minutes := int(now.Sub(in.LastPing).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	d := Derived{
		Mode:                 in.LatestMode,
		IsStale:              in.LastPing.Before(now.Add(-in.Threshold)),
		WithinOperatingHours: in.WithinHours,
		MinutesSinceLastPing: minutes,
	}
	if d.Mode == "" {
		d.Mode = ModeUnknown
	}

	switch {
	case d.Mode == ModeMaintenance:
		d.Status = StatusMaintenance
	case !d.WithinOperatingHours:
		d.Status = StatusOffline
	case d.IsStale:
		d.Status = StatusStale
	case in.LatestStatus != "":
		d.Status = in.LatestStatus
	default:
		d.Status = StatusUnknown
	}
	return d
}

// HasIssue reports whether the booth needs operator attention. A stale or
// warning booth outside its operating hours is expectedly quiet and does
// not count; errors always do.
func (d Derived) HasIssue() bool {
	if d.IsStale && d.WithinOperatingHours {
		return true
	}
	if d.Status == StatusError {
		return true
	}
	return d.Status == StatusWarning && d.WithinOperatingHours
}
