package repositories_test

import (
	"context"
	"testing"

	"pharmahub/internal/config"
	"pharmahub/internal/database"
	"pharmahub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}, "silent")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Slug: uuid.NewString(), Price: price, Stock: stock, IsActive: true}
	require.NoError(t, db.WithContext(context.Background()).Create(&p).Error)
	return p
}
