package repositories

import (
	"context"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
	Get(ctx context.Context, userID, productID uint) (*models.CartItem, error)
	AddQuantity(ctx context.Context, userID, productID uint, quantity int) error
	UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error
	Delete(ctx context.Context, userID, productID uint) error
	Clear(ctx context.Context, userID uint) error
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to get cart")
	}
	return items, nil
}

func (r *GORMCartRepository) Get(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, lookupError(err, "cart item for product %d", productID)
	}
	return &item, nil
}

// AddQuantity inserts the cart line or adds quantity to the existing one in a single
// statement, so concurrent adds for the same product accumulate.
func (r *GORMCartRepository) AddQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	return r.db.WithContext(ctx).Omit("Product").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to update cart item")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item for product %d not found", productID)
	}
	return nil
}

func (r *GORMCartRepository) Delete(ctx context.Context, userID, productID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to remove cart item")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item for product %d not found", productID)
	}
	return nil
}

func (r *GORMCartRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.Persistence(err, "failed to clear cart")
	}
	return nil
}
