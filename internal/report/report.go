// Package report computes the dashboard's derived views. Everything here is
// a pure function over a store snapshot, recomputed on each load.
package report

import (
	"sort"
	"time"

	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

// Dashboard is the aggregated view served to the dashboard page.
type Dashboard struct {
	GeneratedAt       time.Time          `json:"generatedAt"`
	Equipment         EquipmentSummary   `json:"equipment"`
	Maintenance       MaintenanceSummary `json:"maintenance"`
	Sectors           []SectorSummary    `json:"sectors"`
	MaintenanceByType map[string]int     `json:"maintenanceByType"`

	// Mean time between opening and closing a record, over closed records.
	MeanTimeToResolveSeconds float64 `json:"meanTimeToResolveSeconds"`
}

// EquipmentSummary holds the equipment-side KPIs.
type EquipmentSummary struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	PercentActive float64        `json:"percentActive"`
}

// MaintenanceSummary holds the maintenance-side KPIs.
type MaintenanceSummary struct {
	Total         int     `json:"total"`
	Open          int     `json:"open"`
	Closed        int     `json:"closed"`
	PercentClosed float64 `json:"percentClosed"`
}

// SectorSummary holds per-sector availability numbers.
type SectorSummary struct {
	Sector              string  `json:"sector"`
	Total               int     `json:"total"`
	Active              int     `json:"active"`
	AvailabilityPercent float64 `json:"availabilityPercent"`
}

// Build aggregates a snapshot into a Dashboard. A non-empty sector scopes
// both the equipment numbers and the maintenance numbers to that sector.
func Build(snap store.Snapshot, sector string) Dashboard {
	equipment := snap.Equipment
	if sector != "" {
		scoped := equipment[:0:0]
		for _, eq := range equipment {
			if eq.Sector == sector {
				scoped = append(scoped, eq)
			}
		}
		equipment = scoped
	}

	inScope := make(map[int64]bool, len(equipment))
	for _, eq := range equipment {
		inScope[eq.ID] = true
	}

	dash := Dashboard{
		GeneratedAt:       snap.TakenAt,
		MaintenanceByType: make(map[string]int),
	}

	dash.Equipment.Total = len(equipment)
	dash.Equipment.ByStatus = make(map[string]int)
	for _, eq := range equipment {
		dash.Equipment.ByStatus[eq.Status]++
	}
	dash.Equipment.PercentActive = Percent(dash.Equipment.ByStatus[model.StatusActive], dash.Equipment.Total)

	var resolveTotal time.Duration
	for _, rec := range snap.Maintenance {
		if !inScope[rec.EquipmentID] {
			continue
		}
		dash.Maintenance.Total++
		dash.MaintenanceByType[rec.Type]++
		switch rec.Status {
		case model.MaintenanceOpen:
			dash.Maintenance.Open++
		case model.MaintenanceClosed:
			dash.Maintenance.Closed++
			if rec.FinishedAt != nil {
				resolveTotal += rec.FinishedAt.Sub(rec.StartedAt)
			}
		}
	}
	dash.Maintenance.PercentClosed = Percent(dash.Maintenance.Closed, dash.Maintenance.Total)
	if dash.Maintenance.Closed > 0 {
		dash.MeanTimeToResolveSeconds = resolveTotal.Seconds() / float64(dash.Maintenance.Closed)
	}

	dash.Sectors = SectorAvailability(equipment)
	return dash
}

// SectorAvailability groups equipment by sector and computes availability as
// active/total*100 per sector.
func SectorAvailability(equipment []model.Equipment) []SectorSummary {
	bySector := make(map[string]*SectorSummary)
	for _, eq := range equipment {
		summary, ok := bySector[eq.Sector]
		if !ok {
			summary = &SectorSummary{Sector: eq.Sector}
			bySector[eq.Sector] = summary
		}
		summary.Total++
		if eq.Status == model.StatusActive {
			summary.Active++
		}
	}

	sectors := make([]SectorSummary, 0, len(bySector))
	for _, summary := range bySector {
		summary.AvailabilityPercent = Percent(summary.Active, summary.Total)
		sectors = append(sectors, *summary)
	}
	sort.Slice(sectors, func(i, j int) bool { return sectors[i].Sector < sectors[j].Sector })
	return sectors
}

// Percent returns part/total*100, defined as 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
