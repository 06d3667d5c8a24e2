package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/cache"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"

	log "github.com/sirupsen/logrus"
)

const productCachePrefix = "products:"

// ProductService handles business logic related to products. Reads go through the
// catalog cache; every write invalidates it.
type ProductService struct {
	repo  repositories.ProductRepository
	cache cache.Cache
	ttl   time.Duration

	// generation is bumped on every invalidation. A read only fills the cache if no
	// invalidation happened since it started.
	mu         sync.Mutex
	generation uint64
}

// NewProductService creates a new ProductService. A nil cache falls back to memory.
func NewProductService(repo repositories.ProductRepository, c cache.Cache, ttl time.Duration) *ProductService {
	if c == nil {
		c = cache.NewMemory()
	}
	return &ProductService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func listKey(filter models.ProductFilter) string {
	return fmt.Sprintf("%slist:%s:%s:%t", productCachePrefix, filter.CategorySlug, strings.ToLower(filter.Search), filter.ActiveOnly)
}

func productKey(id uint) string {
	return fmt.Sprintf("%sid:%d", productCachePrefix, id)
}

// GetAllProducts retrieves the products matching filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	key := listKey(filter)
	var cached []models.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.WithError(err).Warn("Catalog cache read failed")
	} else if hit {
		return cached, nil
	}

	gen := s.currentGeneration()
	products, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.store(ctx, gen, key, products)
	return products, nil
}

// GetProductByID retrieves a single product with its category and detail.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	key := productKey(id)
	var cached models.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.WithError(err).Warn("Catalog cache read failed")
	} else if hit {
		return &cached, nil
	}

	gen := s.currentGeneration()
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, gen, key, product)
	return product, nil
}

func (s *ProductService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// store caches value unless the catalog was invalidated after gen was taken.
func (s *ProductService) store(ctx context.Context, gen uint64, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("Catalog cache write failed")
	}
}

// CreateProduct creates a new product, deriving the slug from the name when empty.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := prepareProduct(product); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	return s.InvalidateCatalog(ctx)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := prepareProduct(product); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	return s.InvalidateCatalog(ctx)
}

func prepareProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return apperrors.ValidationFields("Validation failed", map[string]string{"name": "name is required"})
	}
	if product.Price < 0 {
		return apperrors.ValidationFields("Validation failed", map[string]string{"price": "price must not be negative"})
	}
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	} else {
		product.Slug = slugify(product.Slug)
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.InvalidateCatalog(ctx)
}

// UpsertDetail replaces the pharmaceutical detail of a product.
func (s *ProductService) UpsertDetail(ctx context.Context, productID uint, detail *models.ProductDetail) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	detail.ProductID = productID
	if err := s.repo.UpsertDetail(ctx, detail); err != nil {
		return err
	}
	return s.InvalidateCatalog(ctx)
}

// SetImage records the public URL of a product's uploaded image.
func (s *ProductService) SetImage(ctx context.Context, productID uint, imageURL string) error {
	if err := s.repo.UpdateImage(ctx, productID, imageURL); err != nil {
		return err
	}
	return s.InvalidateCatalog(ctx)
}

// InvalidateCatalog drops every cached product listing and product.
func (s *ProductService) InvalidateCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.cache.DeletePrefix(ctx, productCachePrefix); err != nil {
		log.WithError(err).Warn("Catalog cache invalidation failed")
	}
	return nil
}

// HandleOrderEvent invalidates the catalog after a checkout changed stock.
func (s *ProductService) HandleOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.Type != models.NotificationOrderCreated {
		return nil
	}
	return s.InvalidateCatalog(ctx)
}
