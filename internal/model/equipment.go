package model

import "time"

// Equipment status values. An equipment is in_maintenance exactly while an
// open maintenance record references it.
const (
	StatusActive        = "active"
	StatusInMaintenance = "in_maintenance"
	StatusInactive      = "inactive"
	StatusAwaitingParts = "awaiting_parts"
)

// Equipment represents a trackable hospital asset.
type Equipment struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	Sector       string    `gorm:"size:128;index;not null" json:"sector"`
	SerialNumber string    `gorm:"size:128;uniqueIndex;not null" json:"serialNumber"`
	Status       string    `gorm:"size:32;index;not null" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Associations
	Maintenances []MaintenanceRecord `gorm:"foreignKey:EquipmentID" json:"maintenances,omitempty"`
}

// TableName pins the table name; "equipment" has no plural form.
func (Equipment) TableName() string { return "equipment" }

// KnownStatus reports whether s is one of the recognized equipment statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusActive, StatusInMaintenance, StatusInactive, StatusAwaitingParts:
		return true
	}
	return false
}
