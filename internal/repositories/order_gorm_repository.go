package repositories

import (
	"context"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems runs the checkout transaction. Errors from any statement are returned
// as they are after the transaction has been rolled back.
func (r *GORMOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem, policy models.StockPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
			if err := applyStock(tx, items[i], policy); err != nil {
				return err
			}
		}

		order.Items = items
		return nil
	})
}

// applyStock decrements stock and increments the sold count of the line's product.
func applyStock(tx *gorm.DB, item models.OrderItem, policy models.StockPolicy) error {
	q := tx.Model(&models.Product{}).Where("id = ?", item.ProductID)
	if policy == models.StockStrict {
		q = q.Where("stock >= ?", item.Quantity)
	}

	res := q.Updates(map[string]interface{}{
		"stock":      gorm.Expr("stock - ?", item.Quantity),
		"sold_count": gorm.Expr("sold_count + ?", item.Quantity),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return apperrors.Validation("product %d does not exist", item.ProductID)
	}
	return apperrors.Conflict("insufficient stock for product %d (requested: %d)", item.ProductID, item.Quantity)
}

// GetAll returns every order newest first with its items.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

// GetByUserID returns the orders of one user newest first with their items.
func (r *GORMOrderRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GORMOrderRepository) list(_ context.Context, q *gorm.DB) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := q.Preload("Items", orderItemsByID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to get orders")
	}
	return orders, nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&order, id).Error
	if err != nil {
		return nil, lookupError(err, "order with ID %d", id)
	}
	return &order, nil
}

func (r *GORMOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, lookupError(err, "order %s", orderNumber)
	}
	return &order, nil
}

func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *GORMOrderRepository) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumn(ctx, id, "payment_status", status)
}

func (r *GORMOrderRepository) updateColumn(ctx context.Context, id uint, column, value string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{column: value, "updated_at": time.Now()})
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to update order %s", column)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order with ID %d not found for update", id)
	}
	return nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}
