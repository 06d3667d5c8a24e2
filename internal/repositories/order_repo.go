package repositories

import (
	"context"

	"pharmahub/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems persists the order header, one row per item and the stock effects
	// on every referenced product as a single unit of work.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem, policy models.StockPolicy) error
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
}
