package repositories

import (
	"context"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for product category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.ProductCategory, error)
	GetByID(ctx context.Context, id uint) (*models.ProductCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProductCategory, error)
	Create(ctx context.Context, category *models.ProductCategory) error
	Update(ctx context.Context, category *models.ProductCategory) error
	Delete(ctx context.Context, id uint) error
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.ProductCategory, error) {
	categories := make([]models.ProductCategory, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Persistence(err, "failed to get categories")
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupError(err, "category with ID %d", id)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, lookupError(err, "category %s", slug)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.ProductCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.ProductCategory) error {
	res := r.db.WithContext(ctx).Model(&models.ProductCategory{}).Where("id = ?", category.ID).
		Select("name", "slug", "description", "updated_at").
		Updates(category)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category with ID %d not found for update", category.ID)
	}
	return nil
}

// Delete removes a category; its products keep existing without a category.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ProductCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("category with ID %d not found for deletion", id)
		}
		return nil
	})
}
