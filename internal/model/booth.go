package model

import "time"

// Booth represents a registered photo-booth device.
type Booth struct {
	ID             string `gorm:"primaryKey;size:36"`
	BoothID        string `gorm:"uniqueIndex;size:128;not null"` // Stable external identifier
	Name           string `gorm:"size:256"`
	Timezone       string `gorm:"size:64"`
	OperatingHours string // Serialized schedule; parsed at the schedule package boundary
	LastPing       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Associations
	HealthLogs []HealthLog `gorm:"foreignKey:BoothID;references:ID"`
}
