package repositories

import (
	"context"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
}

type GORMNotificationRepository struct {
	db *gorm.DB
}

func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{db: db}
}

func (r *GORMNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return apperrors.Persistence(err, "failed to create notification")
	}
	return nil
}

func (r *GORMNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to get notifications")
	}
	return notifications, nil
}

func (r *GORMNotificationRepository) MarkRead(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).Update("is_read", true)
	if res.Error != nil {
		return apperrors.Persistence(res.Error, "failed to mark notification read")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification %d not found", id)
	}
	return nil
}
