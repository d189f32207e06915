package model

import (
	"encoding/json"
	"time"
)

// HealthLog is one received ping. Rows are append-only and immutable.
type HealthLog struct {
	ID        int64  `gorm:"autoIncrement;primaryKey"`
	BoothID   string `gorm:"index;size:36;not null"` // Internal booth ID, not the external one
	Status    string `gorm:"size:64;not null"`
	Message   string
	Metadata  string    // Opaque JSON blob as reported by the booth
	CreatedAt time.Time `gorm:"index;not null"`
}

// Mode extracts the reported operating mode from the log's metadata.
// Returns "" when metadata is absent, unparseable, or carries no mode.
func (l *HealthLog) Mode() string {
	if l == nil || l.Metadata == "" {
		return ""
	}
	var meta struct {
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal([]byte(l.Metadata), &meta); err != nil {
		return ""
	}
	return meta.Mode
}
