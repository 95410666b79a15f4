package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

func testThresholds() config.AlertsConfig {
	return config.AlertsConfig{
		FrequentThreshold:        3,
		FrequentWindowDays:       182,
		UrgentThreshold:          2,
		AvailabilityFloorPercent: 75,
		StaleOpenDays:            7,
		PreventiveWindowDays:     182,
	}
}

func byRule(alerts []Alert, rule string) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Rule == rule {
			out = append(out, a)
		}
	}
	return out
}

func closedRecord(id, equipmentID int64, typ string, startedAt time.Time) model.MaintenanceRecord {
	finished := startedAt.Add(time.Hour)
	return model.MaintenanceRecord{
		ID: id, EquipmentID: equipmentID, Type: typ,
		Status: model.MaintenanceClosed, StartedAt: startedAt, FinishedAt: &finished,
	}
}

func TestFrequentMaintenanceBoundary(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	eq := model.Equipment{ID: 1, Name: "Monitor A", Sector: "UTI", Status: model.StatusActive}

	inWindow := now.AddDate(0, 0, -30)
	outOfWindow := now.AddDate(0, 0, -200)

	t.Run("fires exactly at the threshold", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				closedRecord(1, 1, model.TypeCorrective, inWindow),
				closedRecord(2, 1, model.TypeCorrective, inWindow.AddDate(0, 0, 10)),
				closedRecord(3, 1, model.TypeCorrective, inWindow.AddDate(0, 0, 20)),
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RuleFrequentMaintenance)
		assert.Len(t, fired, 1)
		assert.Equal(t, int64(1), fired[0].EquipmentID)
		assert.Equal(t, "Monitor A", fired[0].EquipmentName)
	})

	t.Run("does not fire below the threshold", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				closedRecord(1, 1, model.TypeCorrective, inWindow),
				closedRecord(2, 1, model.TypeCorrective, inWindow.AddDate(0, 0, 10)),
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RuleFrequentMaintenance)
		assert.Empty(t, fired)
	})

	t.Run("records outside the window do not count", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				closedRecord(1, 1, model.TypeCorrective, inWindow),
				closedRecord(2, 1, model.TypeCorrective, inWindow.AddDate(0, 0, 10)),
				closedRecord(3, 1, model.TypeCorrective, outOfWindow),
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RuleFrequentMaintenance)
		assert.Empty(t, fired)
	})
}

func TestRepeatedUrgent(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	eq := model.Equipment{ID: 7, Name: "Ventilador B", Sector: "UTI", Status: model.StatusActive}

	snap := store.Snapshot{
		Equipment: []model.Equipment{eq},
		Maintenance: []model.MaintenanceRecord{
			closedRecord(1, 7, model.TypeUrgent, now.AddDate(0, 0, -10)),
			closedRecord(2, 7, model.TypeUrgent, now.AddDate(0, 0, -20)),
		},
	}
	fired := byRule(Evaluate(now, snap, testThresholds()), RuleRepeatedUrgent)
	assert.Len(t, fired, 1)
	assert.Equal(t, SeverityCritical, fired[0].Severity)

	// One urgent plus one corrective stays quiet.
	snap.Maintenance[1].Type = model.TypeCorrective
	fired = byRule(Evaluate(now, snap, testThresholds()), RuleRepeatedUrgent)
	assert.Empty(t, fired)
}

func TestStaleOpen(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	eq := model.Equipment{ID: 3, Name: "Bomba C", Sector: "Emergência", Status: model.StatusInMaintenance}

	open := func(startedAt time.Time) store.Snapshot {
		return store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				{ID: 1, EquipmentID: 3, Type: model.TypeCorrective, Status: model.MaintenanceOpen, StartedAt: startedAt},
			},
		}
	}

	fired := byRule(Evaluate(now, open(now.AddDate(0, 0, -8)), testThresholds()), RuleStaleOpen)
	assert.Len(t, fired, 1)

	fired = byRule(Evaluate(now, open(now.AddDate(0, 0, -6)), testThresholds()), RuleStaleOpen)
	assert.Empty(t, fired)

	// Closed records never go stale.
	snap := open(now.AddDate(0, 0, -30))
	snap.Maintenance[0].Status = model.MaintenanceClosed
	fired = byRule(Evaluate(now, snap, testThresholds()), RuleStaleOpen)
	assert.Empty(t, fired)
}

func TestPreventiveOverdue(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	eq := model.Equipment{ID: 5, Name: "Raio-X D", Sector: "Radiologia", Status: model.StatusActive}

	t.Run("fires for equipment with no preventive record at all", func(t *testing.T) {
		snap := store.Snapshot{Equipment: []model.Equipment{eq}}
		fired := byRule(Evaluate(now, snap, testThresholds()), RulePreventiveOverdue)
		assert.Len(t, fired, 1)
	})

	t.Run("fires when the last preventive is outside the window", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				closedRecord(1, 5, model.TypePreventive, now.AddDate(0, 0, -200)),
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RulePreventiveOverdue)
		assert.Len(t, fired, 1)
	})

	t.Run("quiet with a recent preventive", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{eq},
			Maintenance: []model.MaintenanceRecord{
				closedRecord(1, 5, model.TypePreventive, now.AddDate(0, 0, -30)),
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RulePreventiveOverdue)
		assert.Empty(t, fired)
	})
}

func TestLowAvailability(t *testing.T) {
	now := time.Now().UTC()

	t.Run("fires below the floor", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{
				{ID: 1, Sector: "UTI", Status: model.StatusActive},
				{ID: 2, Sector: "UTI", Status: model.StatusInMaintenance},
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RuleLowAvailability)
		assert.Len(t, fired, 1)
		assert.Equal(t, "UTI", fired[0].Sector)
		assert.Zero(t, fired[0].EquipmentID, "sector alerts carry no equipment")
	})

	t.Run("quiet exactly at the floor", func(t *testing.T) {
		snap := store.Snapshot{
			Equipment: []model.Equipment{
				{ID: 1, Sector: "UTI", Status: model.StatusActive},
				{ID: 2, Sector: "UTI", Status: model.StatusActive},
				{ID: 3, Sector: "UTI", Status: model.StatusActive},
				{ID: 4, Sector: "UTI", Status: model.StatusInMaintenance},
			},
		}
		fired := byRule(Evaluate(now, snap, testThresholds()), RuleLowAvailability)
		assert.Empty(t, fired, "75%% availability is not below the 75%% floor")
	})

	t.Run("no equipment means no sector alerts", func(t *testing.T) {
		fired := byRule(Evaluate(now, store.Snapshot{}, testThresholds()), RuleLowAvailability)
		assert.Empty(t, fired)
	})
}
