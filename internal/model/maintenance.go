package model

import "time"

// Maintenance record status values.
const (
	MaintenanceOpen   = "open"
	MaintenanceClosed = "closed"
)

// Maintenance type values.
const (
	TypePreventive   = "preventive"
	TypeCorrective   = "corrective"
	TypeUrgent       = "urgent"
	TypeCalibration  = "calibration"
	TypeSanitization = "sanitization"
	TypeInspection   = "inspection"
)

// MaintenanceRecord is one open/close lifecycle of service work against one
// equipment. Records are closed exactly once and never deleted or reopened.
type MaintenanceRecord struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	EquipmentID int64      `gorm:"index;not null" json:"equipmentId"`
	Type        string     `gorm:"size:32;not null" json:"type"`
	Description string     `gorm:"size:1024;not null" json:"description"`
	Status      string     `gorm:"size:16;index;not null" json:"status"`
	StartedAt   time.Time  `gorm:"not null" json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Associations
	Equipment Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (MaintenanceRecord) TableName() string { return "maintenance_records" }

// KnownMaintenanceType reports whether t is one of the recognized types.
func KnownMaintenanceType(t string) bool {
	switch t {
	case TypePreventive, TypeCorrective, TypeUrgent, TypeCalibration, TypeSanitization, TypeInspection:
		return true
	}
	return false
}
