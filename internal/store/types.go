package store

import (
	"time"

	"equipment-maintenance-backend/internal/model"
)

// Snapshot is a point-in-time read of both tables, used as the input for
// dashboard aggregation and alert evaluation. It is discarded after use.
type Snapshot struct {
	TakenAt     time.Time
	Equipment   []model.Equipment
	Maintenance []model.MaintenanceRecord
}

// OpenByEquipment indexes the snapshot's open maintenance records by
// equipment ID.
func (s Snapshot) OpenByEquipment() map[int64][]model.MaintenanceRecord {
	open := make(map[int64][]model.MaintenanceRecord)
	for _, rec := range s.Maintenance {
		if rec.Status == model.MaintenanceOpen {
			open[rec.EquipmentID] = append(open[rec.EquipmentID], rec)
		}
	}
	return open
}
