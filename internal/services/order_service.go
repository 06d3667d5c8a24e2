package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"
	"pharmahub/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// OrderItemInput is one requested line. ID is accepted as a fallback for ProductID.
type OrderItemInput struct {
	ProductID   uint
	ID          uint
	ProductName string
	Quantity    int
	Price       float64
}

func (i OrderItemInput) productID() uint {
	if i.ProductID != 0 {
		return i.ProductID
	}
	return i.ID
}

// CreateOrderInput carries a checkout request. Nil monetary fields take their defaults.
type CreateOrderInput struct {
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	UserID         *uint
	Items          []OrderItemInput
	Subtotal       *float64
	TaxAmount      *float64
	DiscountAmount *float64
	TotalAmount    *float64
	PaymentMethod  string
	PaymentStatus  string
	Notes          string
	CouponCode     string
}

// CreateOrderResult is returned after a successful checkout.
type CreateOrderResult struct {
	OrderID       uint
	OrderNumber   string
	Status        string
	PaymentStatus string
	Total         float64
	CreatedAt     time.Time
}

// OrderStatusResult is returned by status updates.
type OrderStatusResult struct {
	OrderID       uint
	OrderNumber   string
	Status        string
	PaymentStatus string
}

// OrderConfig holds the checkout policies.
type OrderConfig struct {
	NumberPrefix string
	StockPolicy  models.StockPolicy
	// VerifyPrices recomputes totals from stored product prices and rejects mismatches.
	VerifyPrices bool
	TaxRate      float64
	Clock        func() time.Time
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	numbers     *OrderNumberGenerator
	cfg         OrderConfig
	hooks       []OrderEventHook
}

// NewOrderService creates a new OrderService. publisher may be nil, in which case events
// only reach subscribed hooks.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher, cfg OrderConfig) *OrderService {
	if cfg.NumberPrefix == "" {
		cfg.NumberPrefix = "PHARMAHUB"
	}
	if cfg.StockPolicy == "" {
		cfg.StockPolicy = models.StockUnconditional
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		numbers:     NewOrderNumberGenerator(cfg.NumberPrefix, cfg.Clock),
		cfg:         cfg,
	}
}

// Subscribe registers a hook for order events. Must be called before serving requests.
func (s *OrderService) Subscribe(hook OrderEventHook) {
	s.hooks = append(s.hooks, hook)
}

// CreateOrder validates the request and persists the order, its items and the stock
// effects atomically.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	items, totals, err := s.buildItems(ctx, in)
	if err != nil {
		return nil, err
	}

	number, now := s.numbers.Next()
	paymentStatus := strings.TrimSpace(in.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	order := &models.Order{
		OrderNumber:    number,
		UserID:         in.UserID,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerEmail:  strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		Subtotal:       totals.Subtotal.InexactFloat64(),
		TaxAmount:      totals.Tax.InexactFloat64(),
		DiscountAmount: totals.Discount.InexactFloat64(),
		TotalAmount:    totals.Total.InexactFloat64(),
		PaymentMethod:  normalizePaymentMethod(in.PaymentMethod),
		PaymentStatus:  paymentStatus,
		Status:         models.OrderStatusPending,
		Notes:          in.Notes,
		CouponCode:     strings.TrimSpace(in.CouponCode),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items, s.cfg.StockPolicy); err != nil {
		log.WithError(err).WithField("order_number", number).Warn("Order transaction rolled back")
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"items":        len(items),
		"total":        order.TotalAmount,
	}).Info("Order created")

	s.emit(ctx, models.NotificationOrderCreated, order)

	return &CreateOrderResult{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Total:         order.TotalAmount,
		CreatedAt:     order.CreatedAt,
	}, nil
}

func validateOrderInput(in CreateOrderInput) error {
	fields := make(map[string]string)
	if strings.TrimSpace(in.CustomerName) == "" {
		fields["customerName"] = "customerName is required"
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		fields["customerPhone"] = "customerPhone is required"
	}
	if len(in.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range in.Items {
		if item.productID() == 0 {
			fields[fmt.Sprintf("items[%d].productId", i)] = "productId is required"
		}
		if item.Quantity <= 0 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be greater than zero"
		}
	}
	if len(fields) > 0 {
		return apperrors.ValidationFields("Validation failed", fields)
	}
	return nil
}

// buildItems snapshots the requested lines and derives the order totals. With price
// verification on, names and prices come from the catalog instead of the request.
func (s *OrderService) buildItems(ctx context.Context, in CreateOrderInput) ([]models.OrderItem, orderTotals, error) {
	items := make([]models.OrderItem, 0, len(in.Items))
	lines := make([]decimal.Decimal, 0, len(in.Items))

	for _, req := range in.Items {
		item := models.OrderItem{
			ProductID:   req.productID(),
			ProductName: req.ProductName,
			Price:       req.Price,
			Quantity:    req.Quantity,
		}
		if s.cfg.VerifyPrices {
			product, err := s.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				if apperrors.Is(err, apperrors.KindNotFound) {
					return nil, orderTotals{}, apperrors.Validation("product %d does not exist", item.ProductID)
				}
				return nil, orderTotals{}, err
			}
			item.ProductName = product.Name
			item.Price = product.Price
		}
		line := lineSubtotal(item.Price, item.Quantity)
		item.Subtotal = line.InexactFloat64()
		items = append(items, item)
		lines = append(lines, line)
	}

	discount := valueOr(in.DiscountAmount, 0)

	if s.cfg.VerifyPrices {
		totals := computeTotals(lines, s.cfg.TaxRate, discount)
		if in.TotalAmount != nil && !totalsMatch(totals.Total, *in.TotalAmount) {
			return nil, orderTotals{}, apperrors.Validation(
				"total amount %.2f does not match computed total %s", *in.TotalAmount, totals.Total.StringFixed(2))
		}
		return items, totals, nil
	}

	// Caller-supplied figures are trusted as given.
	totals := computeTotals(lines, 0, discount)
	if in.Subtotal != nil {
		totals.Subtotal = decimal.NewFromFloat(*in.Subtotal)
	}
	totals.Tax = decimal.NewFromFloat(valueOr(in.TaxAmount, 0))
	if in.TotalAmount != nil {
		totals.Total = decimal.NewFromFloat(*in.TotalAmount)
	} else {
		totals.Total = totals.Subtotal.Add(totals.Tax).Sub(totals.Discount)
	}
	return items, totals, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func normalizePaymentMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", models.PaymentMethodCOD, "cash", "cash_on_delivery":
		return models.PaymentMethodCOD
	default:
		return models.PaymentMethodOnline
	}
}

// UpdateOrderStatus sets the fulfillment status of the order identified by ref, which may
// be an order number or a numeric id.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, ref, status string) (*OrderStatusResult, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.ValidationFields("Validation failed", map[string]string{"status": "status is required"})
	}

	order, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status

	log.WithFields(log.Fields{"order_number": order.OrderNumber, "status": status}).Info("Order status updated")
	s.emit(ctx, models.NotificationOrderStatusUpdated, order)

	return statusResult(order), nil
}

// UpdatePaymentStatus sets the payment status of the order identified by ref.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, ref, status string) (*OrderStatusResult, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.ValidationFields("Validation failed", map[string]string{"paymentStatus": "paymentStatus is required"})
	}

	order, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.PaymentStatus = status

	log.WithFields(log.Fields{"order_number": order.OrderNumber, "payment_status": status}).Info("Order payment status updated")
	s.emit(ctx, models.NotificationOrderStatusUpdated, order)

	return statusResult(order), nil
}

func statusResult(order *models.Order) *OrderStatusResult {
	return &OrderStatusResult{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}
}

// resolve looks an order up by number first and falls back to the numeric id.
func (s *OrderService) resolve(ctx context.Context, ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	order, err := s.orderRepo.GetByOrderNumber(ctx, ref)
	if err == nil {
		return order, nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	id, parseErr := strconv.ParseUint(ref, 10, 64)
	if parseErr != nil || id == 0 {
		return nil, apperrors.NotFound("order %s not found", ref)
	}
	order, err = s.orderRepo.GetByID(ctx, uint(id))
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.NotFound("order %s not found", ref)
		}
		return nil, err
	}
	return order, nil
}

// GetOrder returns one order with its items by number or id.
func (s *OrderService) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	return s.resolve(ctx, ref)
}

// ListOrders returns every order newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// ListOrdersByUser returns the orders of one user newest first.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

// emit publishes the event and runs the subscribed hooks. Failures are logged only; the
// order is already committed.
func (s *OrderService) emit(ctx context.Context, eventType string, order *models.Order) {
	event := OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Total:         order.TotalAmount,
		OccurredAt:    time.Now(),
	}

	if s.publisher != nil {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal %s event: %v", eventType, err)
		} else if err := s.publisher.Publish(rabbitmq.OrderExchange, eventType, body); err != nil {
			log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.OrderNumber, err)
		}
	}

	for _, hook := range s.hooks {
		if err := hook(ctx, event); err != nil {
			log.Printf("Warning: %s hook failed for order %s: %v", eventType, order.OrderNumber, err)
		}
	}
}
