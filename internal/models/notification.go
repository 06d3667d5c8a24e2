package models

import "time"

const (
	NotificationOrderCreated       = "order.created"
	NotificationOrderStatusUpdated = "order.status_updated"
)

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	OrderID   *uint     `json:"order_id" gorm:"index"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	Title     string    `json:"title" gorm:"type:varchar(150);not null"`
	Message   string    `json:"message" gorm:"type:text"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
