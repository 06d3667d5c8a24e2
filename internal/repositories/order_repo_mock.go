package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. Stock effects are
// applied to the given product repository; a failing line leaves both untouched.
type MockOrderRepository struct {
	orders   map[uint]models.Order
	products *MockProductRepository
	nextID   uint
	nextItem uint
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[uint]models.Order),
		products: products,
	}
}

// CreateWithItems stores the order and its items and applies the stock effects.
func (r *MockOrderRepository) CreateWithItems(_ context.Context, order *models.Order, items []models.OrderItem, policy models.StockPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderNumber == order.OrderNumber {
			return apperrors.Conflict("order number %s already exists", order.OrderNumber)
		}
	}

	if r.products != nil {
		if err := r.products.applyStock(items, policy); err != nil {
			return err
		}
	}

	r.nextID++
	order.ID = r.nextID
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	stored := make([]models.OrderItem, len(items))
	for i := range items {
		r.nextItem++
		items[i].ID = r.nextItem
		items[i].OrderID = order.ID
		stored[i] = items[i]
	}
	order.Items = items

	saved := *order
	saved.Items = stored
	r.orders[order.ID] = saved
	return nil
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	return r.filter(func(models.Order) bool { return true }), nil
}

func (r *MockOrderRepository) GetByUserID(_ context.Context, userID uint) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.UserID != nil && *o.UserID == userID }), nil
}

func (r *MockOrderRepository) filter(keep func(models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(order) {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool { return orderList[i].ID > orderList[j].ID })
	return orderList
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order with ID %d not found", id)
	}
	return &order, nil
}

func (r *MockOrderRepository) GetByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			o := order
			return &o, nil
		}
	}
	return nil, apperrors.NotFound("order %s not found", orderNumber)
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(_ context.Context, id uint, status string) error {
	return r.update(id, func(o *models.Order) { o.Status = status })
}

func (r *MockOrderRepository) UpdatePaymentStatus(_ context.Context, id uint, status string) error {
	return r.update(id, func(o *models.Order) { o.PaymentStatus = status })
}

func (r *MockOrderRepository) update(id uint, apply func(*models.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperrors.NotFound("order with ID %d not found for update", id)
	}
	apply(&order)
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
