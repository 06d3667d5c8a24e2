package repositories

import (
	"context"
	"strings"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves the products matching filter, newest first.
func (r *GORMProductRepository) GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN product_categories ON product_categories.id = products.category_id").
			Where("product_categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.ActiveOnly {
		q = q.Where("products.is_active = ?", true)
	}

	products := make([]models.Product, 0)
	if err := q.Order("products.created_at DESC, products.id DESC").Find(&products).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to get products")
	}
	return products, nil
}

// GetByID retrieves a single product with its category and detail.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("Detail").First(&product, id).Error
	if err != nil {
		return nil, lookupError(err, "product with ID %d", id)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return err
	}
	return nil
}

// Update writes every editable column of product, including zero values.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).
		Select("category_id", "name", "slug", "description", "price", "stock", "requires_prescription", "is_active", "updated_at").
		Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %d not found for update", product.ID)
	}
	return nil
}

// Delete removes a product with its detail and cart lines. Past order items keep their
// snapshot, so the slug is free for a new product afterwards.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to delete product")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %d not found for deletion", id)
	}
	return nil
}

// UpsertDetail inserts or replaces the detail row of a product.
func (r *GORMProductRepository) UpsertDetail(ctx context.Context, detail *models.ProductDetail) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"manufacturer", "composition", "dosage", "indications", "side_effects", "storage", "updated_at",
		}),
	}).Create(detail).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *GORMProductRepository) UpdateImage(ctx context.Context, id uint, imageURL string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("image_url", imageURL)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to update product image")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %d not found", id)
	}
	return nil
}
