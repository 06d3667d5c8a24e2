package dto

import (
	"time"

	"pharmahub/internal/models"
	"pharmahub/internal/services"
)

type OrderItemRequest struct {
	ProductID   uint    `json:"productId"`
	ID          uint    `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// CreateOrderRequest is the checkout body. Required fields are enforced by the order
// service so the same rules apply to every caller.
type CreateOrderRequest struct {
	CustomerName   string             `json:"customerName"`
	CustomerPhone  string             `json:"customerPhone"`
	CustomerEmail  string             `json:"customerEmail" validate:"omitempty,email"`
	UserID         *uint              `json:"userId"`
	Items          []OrderItemRequest `json:"items"`
	Subtotal       *float64           `json:"subtotal"`
	TaxAmount      *float64           `json:"taxAmount"`
	DiscountAmount *float64           `json:"discountAmount"`
	TotalAmount    *float64           `json:"totalAmount"`
	PaymentMethod  string             `json:"paymentMethod"`
	PaymentStatus  string             `json:"paymentStatus"`
	Notes          string             `json:"notes"`
	CouponCode     string             `json:"couponCode"`
}

func (r CreateOrderRequest) ToInput() services.CreateOrderInput {
	items := make([]services.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, services.OrderItemInput{
			ProductID:   it.ProductID,
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return services.CreateOrderInput{
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerEmail:  r.CustomerEmail,
		UserID:         r.UserID,
		Items:          items,
		Subtotal:       r.Subtotal,
		TaxAmount:      r.TaxAmount,
		DiscountAmount: r.DiscountAmount,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
		PaymentStatus:  r.PaymentStatus,
		Notes:          r.Notes,
		CouponCode:     r.CouponCode,
	}
}

type CreateOrderResponse struct {
	OrderID       uint      `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromCreateOrderResult(r *services.CreateOrderResult) CreateOrderResponse {
	return CreateOrderResponse{
		OrderID:       r.OrderID,
		OrderNumber:   r.OrderNumber,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt,
	}
}

type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID             uint                `json:"id"`
	OrderNumber    string              `json:"orderNumber"`
	UserID         *uint               `json:"userId"`
	CustomerName   string              `json:"customerName"`
	CustomerEmail  string              `json:"customerEmail"`
	CustomerPhone  string              `json:"customerPhone"`
	Subtotal       float64             `json:"subtotal"`
	TaxAmount      float64             `json:"taxAmount"`
	DiscountAmount float64             `json:"discountAmount"`
	TotalAmount    float64             `json:"totalAmount"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentStatus  string              `json:"paymentStatus"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes"`
	CouponCode     string              `json:"couponCode"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// FromOrder maps an order with its items. Items is never nil.
func FromOrder(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		Subtotal:       o.Subtotal,
		TaxAmount:      o.TaxAmount,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Status:         o.Status,
		Notes:          o.Notes,
		CouponCode:     o.CouponCode,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func FromOrders(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

type OrderStatusResponse struct {
	OrderID       uint   `json:"orderId"`
	OrderNumber   string `json:"orderNumber"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func FromStatusResult(r *services.OrderStatusResult) OrderStatusResponse {
	return OrderStatusResponse{
		OrderID:       r.OrderID,
		OrderNumber:   r.OrderNumber,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
	}
}
