package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0), "zero total must be defined as 0, not a division error")
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 100.0, Percent(4, 4))
}

func TestSectorAvailability(t *testing.T) {
	equipment := []model.Equipment{
		{ID: 1, Sector: "UTI", Status: model.StatusActive},
		{ID: 2, Sector: "UTI", Status: model.StatusInMaintenance},
		{ID: 3, Sector: "UTI", Status: model.StatusActive},
		{ID: 4, Sector: "UTI", Status: model.StatusActive},
		{ID: 5, Sector: "Centro Cirúrgico", Status: model.StatusInactive},
	}

	sectors := SectorAvailability(equipment)
	assert.Len(t, sectors, 2)

	// Sorted by sector name.
	assert.Equal(t, "Centro Cirúrgico", sectors[0].Sector)
	assert.Equal(t, 1, sectors[0].Total)
	assert.Equal(t, 0, sectors[0].Active)
	assert.Equal(t, 0.0, sectors[0].AvailabilityPercent)

	assert.Equal(t, "UTI", sectors[1].Sector)
	assert.Equal(t, 4, sectors[1].Total)
	assert.Equal(t, 3, sectors[1].Active)
	assert.Equal(t, 75.0, sectors[1].AvailabilityPercent)
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	snap := store.Snapshot{
		TakenAt: now,
		Equipment: []model.Equipment{
			{ID: 1, Name: "Monitor A", Sector: "UTI", Status: model.StatusActive},
			{ID: 2, Name: "Ventilador B", Sector: "UTI", Status: model.StatusInMaintenance},
			{ID: 3, Name: "Bomba C", Sector: "Emergência", Status: model.StatusActive},
		},
		Maintenance: []model.MaintenanceRecord{
			{
				ID: 1, EquipmentID: 2, Type: model.TypeCorrective,
				Status:    model.MaintenanceOpen,
				StartedAt: now.Add(-2 * time.Hour),
			},
			{
				ID: 2, EquipmentID: 1, Type: model.TypePreventive,
				Status:     model.MaintenanceClosed,
				StartedAt:  now.Add(-48 * time.Hour),
				FinishedAt: timePtr(now.Add(-47 * time.Hour)),
			},
			{
				ID: 3, EquipmentID: 3, Type: model.TypePreventive,
				Status:     model.MaintenanceClosed,
				StartedAt:  now.Add(-24 * time.Hour),
				FinishedAt: timePtr(now.Add(-21 * time.Hour)),
			},
		},
	}

	dash := Build(snap, "")

	assert.Equal(t, now, dash.GeneratedAt)

	assert.Equal(t, 3, dash.Equipment.Total)
	assert.Equal(t, 2, dash.Equipment.ByStatus[model.StatusActive])
	assert.Equal(t, 1, dash.Equipment.ByStatus[model.StatusInMaintenance])
	assert.InDelta(t, 66.67, dash.Equipment.PercentActive, 0.01)

	assert.Equal(t, 3, dash.Maintenance.Total)
	assert.Equal(t, 1, dash.Maintenance.Open)
	assert.Equal(t, 2, dash.Maintenance.Closed)
	assert.InDelta(t, 66.67, dash.Maintenance.PercentClosed, 0.01)

	assert.Equal(t, 2, dash.MaintenanceByType[model.TypePreventive])
	assert.Equal(t, 1, dash.MaintenanceByType[model.TypeCorrective])

	// Resolution times: 1h and 3h, mean 2h.
	assert.Equal(t, (2 * time.Hour).Seconds(), dash.MeanTimeToResolveSeconds)

	assert.Len(t, dash.Sectors, 2)
}

func TestBuildSectorFilter(t *testing.T) {
	now := time.Now().UTC()
	snap := store.Snapshot{
		TakenAt: now,
		Equipment: []model.Equipment{
			{ID: 1, Sector: "UTI", Status: model.StatusActive},
			{ID: 2, Sector: "Emergência", Status: model.StatusActive},
		},
		Maintenance: []model.MaintenanceRecord{
			{ID: 1, EquipmentID: 1, Type: model.TypePreventive, Status: model.MaintenanceOpen, StartedAt: now},
			{ID: 2, EquipmentID: 2, Type: model.TypeUrgent, Status: model.MaintenanceOpen, StartedAt: now},
		},
	}

	dash := Build(snap, "UTI")

	assert.Equal(t, 1, dash.Equipment.Total)
	assert.Equal(t, 100.0, dash.Equipment.PercentActive)

	// Maintenance numbers are scoped to equipment in the filtered sector.
	assert.Equal(t, 1, dash.Maintenance.Total)
	assert.Equal(t, 1, dash.MaintenanceByType[model.TypePreventive])
	assert.Zero(t, dash.MaintenanceByType[model.TypeUrgent])

	assert.Len(t, dash.Sectors, 1)
	assert.Equal(t, "UTI", dash.Sectors[0].Sector)
}

func TestBuildEmptySnapshot(t *testing.T) {
	dash := Build(store.Snapshot{TakenAt: time.Now()}, "")

	assert.Zero(t, dash.Equipment.Total)
	assert.Equal(t, 0.0, dash.Equipment.PercentActive)
	assert.Equal(t, 0.0, dash.Maintenance.PercentClosed)
	assert.Equal(t, 0.0, dash.MeanTimeToResolveSeconds)
	assert.Empty(t, dash.Sectors)
}
