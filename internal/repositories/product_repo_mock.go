package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	details  map[uint]models.ProductDetail
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		details:  make(map[uint]models.ProductDetail),
	}
}

// GetAll returns the products matching filter, newest first. Category slugs are not
// tracked in memory, so CategorySlug is ignored.
func (r *MockProductRepository) GetAll(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID > productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product with ID %d not found", id)
	}
	if d, ok := r.details[id]; ok {
		product.Detail = &d
	}
	return &product, nil
}

// Create adds a new product, assigning the next ID when none is set.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		r.nextID++
		product.ID = r.nextID
	} else if product.ID > r.nextID {
		r.nextID = product.ID
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NotFound("product with ID %d not found for update", product.ID)
	}
	product.SoldCount = existing.SoldCount
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product with ID %d not found for deletion", id)
	}
	delete(r.products, id)
	delete(r.details, id)
	return nil
}

func (r *MockProductRepository) UpsertDetail(_ context.Context, detail *models.ProductDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[detail.ProductID]; !ok {
		return apperrors.NotFound("product with ID %d not found", detail.ProductID)
	}
	r.details[detail.ProductID] = *detail
	return nil
}

func (r *MockProductRepository) UpdateImage(_ context.Context, id uint, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return apperrors.NotFound("product with ID %d not found", id)
	}
	p.ImageURL = imageURL
	r.products[id] = p
	return nil
}

// applyStock mutates stock for a committed checkout. Callers must hold no lock.
func (r *MockProductRepository) applyStock(items []models.OrderItem, policy models.StockPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every line first so a failing line leaves all products untouched.
	remaining := make(map[uint]int)
	for _, item := range items {
		p, ok := r.products[item.ProductID]
		if !ok {
			return apperrors.Validation("product %d does not exist", item.ProductID)
		}
		if _, seen := remaining[item.ProductID]; !seen {
			remaining[item.ProductID] = p.Stock
		}
		if policy == models.StockStrict && remaining[item.ProductID] < item.Quantity {
			return apperrors.Conflict("insufficient stock for product %d (requested: %d)", item.ProductID, item.Quantity)
		}
		remaining[item.ProductID] -= item.Quantity
	}

	for _, item := range items {
		p := r.products[item.ProductID]
		p.Stock -= item.Quantity
		p.SoldCount += item.Quantity
		r.products[item.ProductID] = p
	}
	return nil
}
