//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/config"
	"pharmahub/internal/database"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresCheckoutRollback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "pharmahub"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, container.Terminate(terminateCtx))
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.Open(config.DatabaseConfig{
		Driver:      config.DriverPostgres,
		DSN:         fmt.Sprintf("postgres://postgres:postgres@%s:%s/pharmahub?sslmode=disable", host, port.Port()),
		AutoMigrate: true,
	}, "silent")
	require.NoError(t, err)

	product := models.Product{Name: "Paracetamol", Slug: "paracetamol", Price: 1000, Stock: 50, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	repo := repositories.NewGORMOrderRepository(db)
	order := newOrder("PHARMAHUB-1", "Rollback Customer", 5500)
	err = repo.CreateWithItems(ctx, order, []models.OrderItem{
		{ProductID: product.ID, Price: 1000, Quantity: 5, Subtotal: 5000},
		{ProductID: 999, Price: 500, Quantity: 1, Subtotal: 500},
	}, models.StockUnconditional)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	var orders, items int64
	db.Model(&models.Order{}).Where("customer_name = ?", "Rollback Customer").Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 50, reloaded.Stock)
}
