// Package alert evaluates the threshold rules over a store snapshot. The
// rules are stateless: each evaluation starts from scratch, and nothing is
// persisted between runs.
package alert

import (
	"fmt"
	"sort"
	"time"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/report"
	"equipment-maintenance-backend/internal/store"
)

// Rule names.
const (
	RuleFrequentMaintenance = "frequent_maintenance"
	RuleRepeatedUrgent      = "repeated_urgent"
	RuleLowAvailability     = "low_availability"
	RuleStaleOpen           = "stale_open"
	RulePreventiveOverdue   = "preventive_overdue"
)

// Severity levels.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is a derived flag from a threshold rule over current data. Equipment
// alerts carry EquipmentID; sector alerts carry only Sector.
type Alert struct {
	Rule          string `json:"rule"`
	Severity      string `json:"severity"`
	EquipmentID   int64  `json:"equipmentId,omitempty"`
	EquipmentName string `json:"equipmentName,omitempty"`
	Sector        string `json:"sector,omitempty"`
	Message       string `json:"message"`
}

// Evaluate runs every rule against the snapshot and returns the fired
// alerts, ordered by equipment ID and then rule, with sector alerts last.
func Evaluate(now time.Time, snap store.Snapshot, cfg config.AlertsConfig) []Alert {
	equipment := make([]model.Equipment, len(snap.Equipment))
	copy(equipment, snap.Equipment)
	sort.Slice(equipment, func(i, j int) bool { return equipment[i].ID < equipment[j].ID })

	recent := make(map[int64]int)
	recentUrgent := make(map[int64]int)
	lastPreventive := make(map[int64]time.Time)

	windowStart := now.AddDate(0, 0, -cfg.FrequentWindowDays)
	preventiveStart := now.AddDate(0, 0, -cfg.PreventiveWindowDays)
	staleBefore := now.AddDate(0, 0, -cfg.StaleOpenDays)

	var alerts []Alert
	for _, rec := range snap.Maintenance {
		if rec.StartedAt.After(windowStart) {
			recent[rec.EquipmentID]++
			if rec.Type == model.TypeUrgent {
				recentUrgent[rec.EquipmentID]++
			}
		}
		if rec.Type == model.TypePreventive && rec.StartedAt.After(lastPreventive[rec.EquipmentID]) {
			lastPreventive[rec.EquipmentID] = rec.StartedAt
		}
	}

	openRecords := snap.OpenByEquipment()

	for _, eq := range equipment {
		if n := recent[eq.ID]; n >= cfg.FrequentThreshold {
			alerts = append(alerts, Alert{
				Rule:          RuleFrequentMaintenance,
				Severity:      SeverityWarning,
				EquipmentID:   eq.ID,
				EquipmentName: eq.Name,
				Sector:        eq.Sector,
				Message: fmt.Sprintf("%s has %d maintenance records in the last %d days",
					eq.Name, n, cfg.FrequentWindowDays),
			})
		}

		if n := recentUrgent[eq.ID]; n >= cfg.UrgentThreshold {
			alerts = append(alerts, Alert{
				Rule:          RuleRepeatedUrgent,
				Severity:      SeverityCritical,
				EquipmentID:   eq.ID,
				EquipmentName: eq.Name,
				Sector:        eq.Sector,
				Message: fmt.Sprintf("%s has %d urgent maintenance records in the last %d days",
					eq.Name, n, cfg.FrequentWindowDays),
			})
		}

		for _, rec := range openRecords[eq.ID] {
			if rec.StartedAt.Before(staleBefore) {
				alerts = append(alerts, Alert{
					Rule:          RuleStaleOpen,
					Severity:      SeverityCritical,
					EquipmentID:   eq.ID,
					EquipmentName: eq.Name,
					Sector:        eq.Sector,
					Message: fmt.Sprintf("%s has a maintenance record open since %s, older than %d days",
						eq.Name, rec.StartedAt.Format("2006-01-02"), cfg.StaleOpenDays),
				})
			}
		}

		if last, ok := lastPreventive[eq.ID]; !ok || last.Before(preventiveStart) {
			alerts = append(alerts, Alert{
				Rule:          RulePreventiveOverdue,
				Severity:      SeverityWarning,
				EquipmentID:   eq.ID,
				EquipmentName: eq.Name,
				Sector:        eq.Sector,
				Message: fmt.Sprintf("%s has no preventive maintenance in the last %d days",
					eq.Name, cfg.PreventiveWindowDays),
			})
		}
	}

	for _, sector := range report.SectorAvailability(equipment) {
		if sector.AvailabilityPercent < cfg.AvailabilityFloorPercent {
			alerts = append(alerts, Alert{
				Rule:     RuleLowAvailability,
				Severity: SeverityWarning,
				Sector:   sector.Sector,
				Message: fmt.Sprintf("sector %s availability is %.1f%%, below the %.0f%% floor",
					sector.Sector, sector.AvailabilityPercent, cfg.AvailabilityFloorPercent),
			})
		}
	}

	return alerts
}
