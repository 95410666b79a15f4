package api

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Auth: config.AuthConfig{
			AdminEmail:      "admin@hsc.example",
			AdminPassword:   "s3cret",
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 60,
		},
		Alerts: config.AlertsConfig{
			FrequentThreshold:        3,
			FrequentWindowDays:       182,
			UrgentThreshold:          2,
			AvailabilityFloorPercent: 75,
			StaleOpenDays:            7,
			PreventiveWindowDays:     182,
		},
		Sectors: []string{"UTI", "Emergência"},
	}
}

// newTestStore opens an isolated in-memory SQLite database and migrates the
// schema.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Equipment{},
		&model.MaintenanceRecord{},
		&model.PushSubscription{},
	))

	return store.NewGormStore(db)
}
