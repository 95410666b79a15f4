package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"equipment-maintenance-backend/internal/model"
)

// Sentinel errors the handlers map to HTTP status codes.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateSerial     = errors.New("serial number already registered")
	ErrEquipmentNotActive  = errors.New("equipment is not active")
	ErrMaintenanceNotOpen  = errors.New("maintenance record is not open")
	ErrOpenMaintenance     = errors.New("equipment has an open maintenance record")
	ErrStatusNotAssignable = errors.New("status cannot be assigned directly")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	RegisterEquipment(ctx context.Context, eq *model.Equipment) error
	GetEquipment(ctx context.Context, id int64) (model.Equipment, error)
	ListEquipment(ctx context.Context, f EquipmentFilter) ([]model.Equipment, error)
	SetEquipmentStatus(ctx context.Context, id int64, status string) error

	OpenMaintenance(ctx context.Context, rec *model.MaintenanceRecord, now time.Time) error
	FinishMaintenance(ctx context.Context, id int64, now time.Time) (model.MaintenanceRecord, error)
	ListMaintenance(ctx context.Context, f MaintenanceFilter) ([]model.MaintenanceRecord, error)

	Snapshot(ctx context.Context) (Snapshot, error)
	Sectors(ctx context.Context) ([]string, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RegisterEquipment inserts a new equipment row with status active.
func (s *gormStore) RegisterEquipment(ctx context.Context, eq *model.Equipment) error {
	eq.Status = model.StatusActive

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Equipment{}).
			Where("serial_number = ?", eq.SerialNumber).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check serial number: %w", err)
		}
		if count > 0 {
			return ErrDuplicateSerial
		}

		if err := tx.Create(eq).Error; err != nil {
			return fmt.Errorf("failed to create equipment: %w", err)
		}
		return nil
	})
}

func (s *gormStore) GetEquipment(ctx context.Context, id int64) (model.Equipment, error) {
	var eq model.Equipment
	err := s.db.WithContext(ctx).
		Preload("Maintenances", func(db *gorm.DB) *gorm.DB {
			return db.Order("started_at DESC")
		}).
		First(&eq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Equipment{}, ErrNotFound
	}
	if err != nil {
		return model.Equipment{}, fmt.Errorf("failed to fetch equipment %d: %w", id, err)
	}
	return eq, nil
}

// EquipmentFilter narrows ListEquipment by equality; empty fields match all.
type EquipmentFilter struct {
	Sector string
	Status string
}

func (s *gormStore) ListEquipment(ctx context.Context, f EquipmentFilter) ([]model.Equipment, error) {
	q := s.db.WithContext(ctx).Model(&model.Equipment{})
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var equipment []model.Equipment
	if err := q.Order("id").Find(&equipment).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

// SetEquipmentStatus assigns an administrative status (active, inactive,
// awaiting_parts). The in_maintenance status is owned by the maintenance
// lifecycle and cannot be assigned here, and no status can be assigned while
// an open maintenance record exists.
func (s *gormStore) SetEquipmentStatus(ctx context.Context, id int64, status string) error {
	if status == model.StatusInMaintenance || !model.KnownStatus(status) {
		return ErrStatusNotAssignable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq model.Equipment
		if err := tx.First(&eq, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch equipment %d: %w", id, err)
		}

		var openCount int64
		if err := tx.Model(&model.MaintenanceRecord{}).
			Where("equipment_id = ? AND status = ?", id, model.MaintenanceOpen).
			Count(&openCount).Error; err != nil {
			return fmt.Errorf("failed to count open maintenance for equipment %d: %w", id, err)
		}
		if openCount > 0 {
			return ErrOpenMaintenance
		}

		if err := tx.Model(&eq).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update equipment %d status: %w", id, err)
		}
		return nil
	})
}

// OpenMaintenance creates an open maintenance record and flips the equipment
// to in_maintenance in a single transaction.
func (s *gormStore) OpenMaintenance(ctx context.Context, rec *model.MaintenanceRecord, now time.Time) error {
	rec.Status = model.MaintenanceOpen
	rec.StartedAt = now
	rec.FinishedAt = nil

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq model.Equipment
		if err := tx.First(&eq, rec.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch equipment %d: %w", rec.EquipmentID, err)
		}
		if eq.Status != model.StatusActive {
			return ErrEquipmentNotActive
		}

		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create maintenance record: %w", err)
		}

		if err := tx.Model(&eq).Update("status", model.StatusInMaintenance).Error; err != nil {
			return fmt.Errorf("failed to flip equipment %d to in_maintenance: %w", rec.EquipmentID, err)
		}
		return nil
	})
}

// FinishMaintenance closes an open record and flips its equipment back to
// active in a single transaction. The end timestamp never precedes the start.
func (s *gormStore) FinishMaintenance(ctx context.Context, id int64, now time.Time) (model.MaintenanceRecord, error) {
	var rec model.MaintenanceRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch maintenance record %d: %w", id, err)
		}
		if rec.Status != model.MaintenanceOpen {
			return ErrMaintenanceNotOpen
		}

		finishedAt := now
		if finishedAt.Before(rec.StartedAt) {
			finishedAt = rec.StartedAt
		}

		updates := map[string]any{
			"status":      model.MaintenanceClosed,
			"finished_at": finishedAt,
		}
		if err := tx.Model(&rec).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to close maintenance record %d: %w", id, err)
		}

		if err := tx.Model(&model.Equipment{}).
			Where("id = ?", rec.EquipmentID).
			Update("status", model.StatusActive).Error; err != nil {
			return fmt.Errorf("failed to reactivate equipment %d: %w", rec.EquipmentID, err)
		}
		return nil
	})
	if err != nil {
		return model.MaintenanceRecord{}, err
	}
	return rec, nil
}

// MaintenanceFilter narrows ListMaintenance by equality; zero fields match all.
type MaintenanceFilter struct {
	EquipmentID int64
	Status      string
}

func (s *gormStore) ListMaintenance(ctx context.Context, f MaintenanceFilter) ([]model.MaintenanceRecord, error) {
	q := s.db.WithContext(ctx).Model(&model.MaintenanceRecord{})
	if f.EquipmentID != 0 {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var records []model.MaintenanceRecord
	if err := q.Order("started_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	return records, nil
}

// Snapshot fetches the full contents of both tables for derived views. The
// result is short-lived; dashboards and alerts recompute from it on each load.
func (s *gormStore) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{TakenAt: time.Now().UTC()}

	if err := s.db.WithContext(ctx).Find(&snap.Equipment).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to snapshot equipment: %w", err)
	}
	if err := s.db.WithContext(ctx).Find(&snap.Maintenance).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to snapshot maintenance records: %w", err)
	}
	return snap, nil
}

// Sectors returns the distinct sector labels present in the equipment table.
func (s *gormStore) Sectors(ctx context.Context) ([]string, error) {
	var sectors []string
	if err := s.db.WithContext(ctx).Model(&model.Equipment{}).
		Distinct("sector").
		Order("sector").
		Pluck("sector", &sectors).Error; err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sectors, nil
}
