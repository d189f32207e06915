package status

import (
	"time"

	"booth-status-backend/internal/model"
)

// HoursInMode computes how long a booth has been continuously in mode,
// given its full health-log history ordered newest first. It walks from
// the newest entry toward the oldest, remembering the oldest contiguous
// log still in the current mode; the first log reporting a different mode
// is the boundary and stops the walk. Logs whose metadata is missing or
// unparseable are transparent rather than a boundary.
//
// The second return value is false when the mode is not tracked (empty,
// Normal, Unknown) or no log in the current run reports it.
func HoursInMode(logs []model.HealthLog, mode string, now time.Time) (float64, bool) {
	if mode == "" || mode == ModeNormal || mode == ModeUnknown {
		return 0, false
	}

	var oldest *model.HealthLog
	for i := range logs {
		logMode := logs[i].Mode()
		if logMode == "" {
			continue
		}
		if logMode != mode {
			break
		}
		oldest = &logs[i]
	}
	if oldest == nil {
		return 0, false
	}

	return now.Sub(oldest.CreatedAt).Hours(), true
}
