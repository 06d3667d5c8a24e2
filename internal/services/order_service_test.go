package services_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"
	"pharmahub/internal/services"
	"pharmahub/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	exchange   string
	routingKey string
	body       []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{exchange, routingKey, body})
	return p.err
}

type orderFixture struct {
	service  *services.OrderService
	orders   *repositories.MockOrderRepository
	products *repositories.MockProductRepository
}

func newOrderFixture(t *testing.T, publisher services.EventPublisher, cfg services.OrderConfig) orderFixture {
	t.Helper()
	products := repositories.NewMockProductRepository()
	ctx := context.Background()
	for _, p := range []models.Product{
		{ID: 1, Name: "Paracetamol 500 mg", Price: 1000, Stock: 50, IsActive: true},
		{ID: 2, Name: "Obat Batuk Hitam", Price: 12000, Stock: 5, IsActive: true},
		{ID: 3, Name: "Vitamin C 1000 mg", Price: 8000, Stock: 10, IsActive: true},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}
	orders := repositories.NewMockOrderRepository(products)
	return orderFixture{
		service:  services.NewOrderService(orders, products, publisher, cfg),
		orders:   orders,
		products: products,
	}
}

func ptr(v float64) *float64 { return &v }

func ahmadOrder() services.CreateOrderInput {
	return services.CreateOrderInput{
		CustomerName:  "Ahmad",
		CustomerPhone: "081234567890",
		Items:         []services.OrderItemInput{{ProductID: 3, ProductName: "Vitamin C 1000 mg", Quantity: 2, Price: 8000}},
		TotalAmount:   ptr(16000),
	}
}

func TestOrderService_CreateOrder_Ahmad(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{NumberPrefix: "PHARMAHUB"})
	ctx := context.Background()

	result, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)
	assert.Equal(t, 16000.0, result.Total)
	assert.Equal(t, models.OrderStatusPending, result.Status)
	assert.Equal(t, models.PaymentStatusPending, result.PaymentStatus)
	assert.Regexp(t, regexp.MustCompile(`^PHARMAHUB-\d+$`), result.OrderNumber)
	assert.NotZero(t, result.OrderID)

	order, err := f.service.GetOrder(ctx, result.OrderNumber)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 16000.0, order.Items[0].Subtotal)
	assert.Equal(t, 16000.0, order.Subtotal)
	assert.Zero(t, order.TaxAmount)
	assert.Zero(t, order.DiscountAmount)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)

	product, err := f.products.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, product.Stock)
	assert.Equal(t, 2, product.SoldCount)
}

func TestOrderService_CreateOrder_OrderNumberFromClock(t *testing.T) {
	instant := time.UnixMilli(1718000000123)
	f := newOrderFixture(t, nil, services.OrderConfig{
		NumberPrefix: "PHARMAHUB",
		Clock:        func() time.Time { return instant },
	})
	ctx := context.Background()

	first, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)
	assert.Equal(t, "PHARMAHUB-1718000000123", first.OrderNumber)
	assert.True(t, first.CreatedAt.Equal(instant))

	// Same millisecond: the generator moves forward instead of repeating itself.
	second, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)
	assert.Equal(t, "PHARMAHUB-1718000000124", second.OrderNumber)
	assert.Equal(t, int64(1718000000124), second.CreatedAt.UnixMilli())
}

func TestOrderService_CreateOrder_ValidationBeforePersistence(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*services.CreateOrderInput)
		field  string
	}{
		"missing name":      {func(in *services.CreateOrderInput) { in.CustomerName = "  " }, "customerName"},
		"missing phone":     {func(in *services.CreateOrderInput) { in.CustomerPhone = "" }, "customerPhone"},
		"no items":          {func(in *services.CreateOrderInput) { in.Items = nil }, "items"},
		"no product id":     {func(in *services.CreateOrderInput) { in.Items[0].ProductID = 0 }, "items[0].productId"},
		"zero quantity":     {func(in *services.CreateOrderInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		"negative quantity": {func(in *services.CreateOrderInput) { in.Items[0].Quantity = -1 }, "items[0].quantity"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := ahmadOrder()
			tc.mutate(&in)

			_, err := f.service.CreateOrder(ctx, in)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))

			var appErr *apperrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Fields, tc.field)
		})
	}

	orders, err := f.service.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	product, _ := f.products.GetByID(ctx, 3)
	assert.Equal(t, 10, product.Stock)
}

func TestOrderService_CreateOrder_FallbackItemID(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	in := ahmadOrder()
	in.Items = []services.OrderItemInput{{ID: 1, Quantity: 3, Price: 1000}}
	in.TotalAmount = ptr(3000)

	result, err := f.service.CreateOrder(ctx, in)
	require.NoError(t, err)

	order, err := f.service.GetOrder(ctx, result.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, uint(1), order.Items[0].ProductID)
}

func TestOrderService_CreateOrder_RollbackOnUnknownProduct(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	in := services.CreateOrderInput{
		CustomerName:  "Rollback Customer",
		CustomerPhone: "0812",
		Items: []services.OrderItemInput{
			{ProductID: 1, Quantity: 5, Price: 1000},
			{ProductID: 999, Quantity: 1, Price: 500},
		},
		TotalAmount: ptr(5500),
	}

	_, err := f.service.CreateOrder(ctx, in)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	orders, err := f.service.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	product, _ := f.products.GetByID(ctx, 1)
	assert.Equal(t, 50, product.Stock)
	assert.Zero(t, product.SoldCount)
}

func TestOrderService_CreateOrder_StockPolicies(t *testing.T) {
	ctx := context.Background()
	in := services.CreateOrderInput{
		CustomerName:  "Budi",
		CustomerPhone: "0813",
		Items:         []services.OrderItemInput{{ProductID: 2, Quantity: 8, Price: 12000}},
		TotalAmount:   ptr(96000),
	}

	strict := newOrderFixture(t, nil, services.OrderConfig{StockPolicy: models.StockStrict})
	_, err := strict.service.CreateOrder(ctx, in)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	product, _ := strict.products.GetByID(ctx, 2)
	assert.Equal(t, 5, product.Stock)

	unconditional := newOrderFixture(t, nil, services.OrderConfig{StockPolicy: models.StockUnconditional})
	_, err = unconditional.service.CreateOrder(ctx, in)
	require.NoError(t, err)
	product, _ = unconditional.products.GetByID(ctx, 2)
	assert.Equal(t, -3, product.Stock)
}

func TestOrderService_CreateOrder_Defaults(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	in := ahmadOrder()
	in.TotalAmount = nil
	in.TaxAmount = ptr(1600)
	in.DiscountAmount = ptr(600)
	in.PaymentMethod = "Bank Transfer"
	in.PaymentStatus = "paid"

	result, err := f.service.CreateOrder(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 17000.0, result.Total)
	assert.Equal(t, "paid", result.PaymentStatus)

	order, err := f.service.GetOrder(ctx, result.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodOnline, order.PaymentMethod)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	in = ahmadOrder()
	in.PaymentMethod = "CASH"
	result, err = f.service.CreateOrder(ctx, in)
	require.NoError(t, err)
	order, err = f.service.GetOrder(ctx, result.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
}

func TestOrderService_CreateOrder_VerifyPrices(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{VerifyPrices: true, TaxRate: 0.11})
	ctx := context.Background()

	// Client claims a cheaper unit price
	tampered := ahmadOrder()
	tampered.Items[0].Price = 1
	tampered.TotalAmount = ptr(2)
	_, err := f.service.CreateOrder(ctx, tampered)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "17760.00")

	honest := ahmadOrder()
	honest.Items[0].ProductName = "whatever the client says"
	honest.TotalAmount = ptr(17760)
	result, err := f.service.CreateOrder(ctx, honest)
	require.NoError(t, err)
	assert.Equal(t, 17760.0, result.Total)

	order, err := f.service.GetOrder(ctx, result.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, 1760.0, order.TaxAmount)
	assert.Equal(t, "Vitamin C 1000 mg", order.Items[0].ProductName)

	unknown := ahmadOrder()
	unknown.Items[0].ProductID = 999
	_, err = f.service.CreateOrder(ctx, unknown)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)

	byNumber, err := f.service.UpdateOrderStatus(ctx, created.OrderNumber, "processing")
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, byNumber.OrderID)
	assert.Equal(t, "processing", byNumber.Status)

	byID, err := f.service.UpdateOrderStatus(ctx, "1", "shipped")
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, byID.OrderID)
	assert.Equal(t, created.OrderNumber, byID.OrderNumber)

	// Empty status mutates nothing
	_, err = f.service.UpdateOrderStatus(ctx, created.OrderNumber, "")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	order, err := f.service.GetOrder(ctx, created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "shipped", order.Status)

	for _, ref := range []string{"PHARMAHUB-404", "404", "not-a-number"} {
		_, err = f.service.UpdateOrderStatus(ctx, ref, "processing")
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound), ref)
	}

	paid, err := f.service.UpdatePaymentStatus(ctx, created.OrderNumber, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.PaymentStatus)
	assert.Equal(t, "shipped", paid.Status)
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newOrderFixture(t, nil, services.OrderConfig{})
	ctx := context.Background()

	userID := uint(5)
	mine := ahmadOrder()
	mine.UserID = &userID
	first, err := f.service.CreateOrder(ctx, mine)
	require.NoError(t, err)
	second, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)

	all, err := f.service.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.OrderID, all[0].ID)

	userOrders, err := f.service.ListOrdersByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, userOrders, 1)
	assert.Equal(t, first.OrderID, userOrders[0].ID)
}

func TestOrderService_PublishesEvents(t *testing.T) {
	publisher := &fakePublisher{}
	f := newOrderFixture(t, publisher, services.OrderConfig{})
	ctx := context.Background()

	var hooked []services.OrderEvent
	f.service.Subscribe(func(_ context.Context, e services.OrderEvent) error {
		hooked = append(hooked, e)
		return errors.New("hook failures are only logged")
	})

	created, err := f.service.CreateOrder(ctx, ahmadOrder())
	require.NoError(t, err)
	_, err = f.service.UpdateOrderStatus(ctx, created.OrderNumber, "processing")
	require.NoError(t, err)

	require.Len(t, publisher.messages, 2)
	assert.Equal(t, rabbitmq.OrderExchange, publisher.messages[0].exchange)
	assert.Equal(t, models.NotificationOrderCreated, publisher.messages[0].routingKey)
	assert.Contains(t, string(publisher.messages[0].body), created.OrderNumber)
	assert.Equal(t, models.NotificationOrderStatusUpdated, publisher.messages[1].routingKey)

	require.Len(t, hooked, 2)
	assert.Equal(t, "processing", hooked[1].Status)

	// Broker failures never fail a committed order
	publisher.err = errors.New("broker down")
	_, err = f.service.CreateOrder(ctx, ahmadOrder())
	assert.NoError(t, err)
}
