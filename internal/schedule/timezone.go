package schedule

import (
	"strings"
	"time"
)

// windowsToIANA maps common Windows timezone IDs to IANA identifiers.
// Booths running on Windows report their platform-native zone name.
var windowsToIANA = map[string]string{
	"Eastern Standard Time":          "America/New_York",
	"Central Standard Time":          "America/Chicago",
	"Mountain Standard Time":         "America/Denver",
	"Pacific Standard Time":          "America/Los_Angeles",
	"Alaska Standard Time":           "America/Anchorage",
	"Hawaiian Standard Time":         "Pacific/Honolulu",
	"Atlantic Standard Time":         "America/Halifax",
	"Newfoundland Standard Time":     "America/St_Johns",
	"Central European Standard Time": "Europe/Budapest",
	"GMT Standard Time":              "Europe/London",
	"W. Europe Standard Time":        "Europe/Berlin",
	"Romance Standard Time":          "Europe/Paris",
	"Russian Standard Time":          "Europe/Moscow",
	"Tokyo Standard Time":            "Asia/Tokyo",
	"China Standard Time":            "Asia/Shanghai",
	"India Standard Time":            "Asia/Kolkata",
	"AUS Eastern Standard Time":      "Australia/Sydney",
	"Cen. Australia Standard Time":   "Australia/Adelaide",
	"AUS Central Standard Time":      "Australia/Darwin",
	"E. Australia Standard Time":     "Australia/Brisbane",
	"W. Australia Standard Time":     "Australia/Perth",
}

// NormalizeTimezone converts a Windows timezone ID to its IANA equivalent.
// Names already in IANA form (containing a '/') pass through unchanged;
// anything unrecognized resolves to UTC.
func NormalizeTimezone(tz string) string {
	if tz == "" {
		return "UTC"
	}
	if strings.Contains(tz, "/") {
		return tz
	}
	if iana, ok := windowsToIANA[tz]; ok {
		return iana
	}
	return "UTC"
}

// Location resolves a booth-reported timezone name to a *time.Location,
// falling back to UTC when the zone database does not know it.
func Location(tz string) *time.Location {
	loc, err := time.LoadLocation(NormalizeTimezone(tz))
	if err != nil {
		return time.UTC
	}
	return loc
}
