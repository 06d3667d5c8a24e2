package models

import "time"

const (
	OrderStatusPending = "pending"

	PaymentStatusPending = "pending"

	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// StockPolicy decides how a checkout mutates product stock.
type StockPolicy string

const (
	// StockUnconditional decrements stock without a floor check; stock may go negative.
	StockUnconditional StockPolicy = "unconditional"
	// StockStrict only decrements when enough stock is left and fails the checkout otherwise.
	StockStrict StockPolicy = "strict"
)

// OrderItem is a snapshot of one purchased line. Product name and price are copied at
// purchase time so the order stays accurate after the product is renamed or repriced.
type OrderItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"index;not null"`
	ProductID   uint      `json:"product_id" gorm:"index;not null"`
	ProductName string    `json:"product_name" gorm:"type:varchar(150)"`
	Price       float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Subtotal    float64   `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order represents a customer order. Customer contact fields are captured at order time
// and are independent of the user record.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	OrderNumber    string      `json:"order_number" gorm:"uniqueIndex;type:varchar(64);not null"`
	UserID         *uint       `json:"user_id" gorm:"index"`
	CustomerName   string      `json:"customer_name" gorm:"type:varchar(150);not null"`
	CustomerEmail  string      `json:"customer_email" gorm:"type:varchar(255)"`
	CustomerPhone  string      `json:"customer_phone" gorm:"type:varchar(30);not null"`
	Subtotal       float64     `json:"subtotal" gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount      float64     `json:"tax_amount" gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount float64     `json:"discount_amount" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    float64     `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod  string      `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus  string      `json:"payment_status" gorm:"type:varchar(20);not null;default:pending"`
	Status         string      `json:"status" gorm:"type:varchar(30);not null;default:pending"`
	Notes          string      `json:"notes" gorm:"type:text"`
	CouponCode     string      `json:"coupon_code" gorm:"type:varchar(50)"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
