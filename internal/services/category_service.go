package services

import (
	"context"
	"strconv"
	"strings"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/cache"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// CategoryService manages product categories.
type CategoryService struct {
	repo  repositories.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo repositories.CategoryRepository, c cache.Cache) *CategoryService {
	if c == nil {
		c = cache.NewMemory()
	}
	return &CategoryService{repo: repo, cache: c}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.repo.GetAll(ctx)
}

// GetCategory looks a category up by numeric id or by slug.
func (s *CategoryService) GetCategory(ctx context.Context, ref string) (*models.ProductCategory, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.repo.GetByID(ctx, uint(id))
	}
	return s.repo.GetBySlug(ctx, ref)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.ProductCategory) error {
	if err := prepareCategory(category); err != nil {
		return err
	}
	return s.repo.Create(ctx, category)
}

// UpdateCategory renames a category. Product listings embed categories, so the catalog
// cache is dropped.
func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.ProductCategory) error {
	if err := prepareCategory(category); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

func (s *CategoryService) invalidateProducts(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, productCachePrefix); err != nil {
		log.WithError(err).Warn("Catalog cache invalidation failed")
	}
}

func prepareCategory(category *models.ProductCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return apperrors.ValidationFields("Validation failed", map[string]string{"name": "name is required"})
	}
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	} else {
		category.Slug = slugify(category.Slug)
	}
	return nil
}
