package services_test

import (
	"context"
	"testing"

	"pharmahub/internal/models"
	"pharmahub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotificationRepository is a mock implementation of repositories.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func TestNotificationService_HandleOrderEvent(t *testing.T) {
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(repo)
	ctx := context.Background()

	// Guest orders have nobody to notify
	require.NoError(t, service.HandleOrderEvent(ctx, services.OrderEvent{Type: models.NotificationOrderCreated, OrderID: 1}))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	userID := uint(9)
	repo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return *n.UserID == 9 && *n.OrderID == 2 && n.Type == models.NotificationOrderCreated && n.Title == "Pesanan diterima"
	})).Return(nil).Once()

	err := service.HandleOrderEvent(ctx, services.OrderEvent{
		Type:        models.NotificationOrderCreated,
		OrderID:     2,
		OrderNumber: "PHARMAHUB-1",
		UserID:      &userID,
		Total:       16000,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotificationService_HandleMessage(t *testing.T) {
	repo := new(MockNotificationRepository)
	service := services.NewNotificationService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationOrderStatusUpdated && n.Message == "Pesanan PHARMAHUB-7: status shipped, pembayaran paid."
	})).Return(nil).Once()

	body := []byte(`{"type":"order.status_updated","order_id":7,"order_number":"PHARMAHUB-7","user_id":3,"status":"shipped","payment_status":"paid"}`)
	require.NoError(t, service.HandleMessage(ctx, body))
	repo.AssertExpectations(t)

	err := service.HandleMessage(ctx, []byte("not json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode order event")
}
