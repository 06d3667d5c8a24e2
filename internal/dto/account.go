package dto

import (
	"time"

	"pharmahub/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r RegisterRequest) ToModel() *models.User {
	return &models.User{Name: r.Name, Email: r.Email, Phone: r.Phone, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Subtotal  float64         `json:"subtotal"`
	Product   ProductResponse `json:"product"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

func FromCartItem(it models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Subtotal:  it.Product.Price * float64(it.Quantity),
		Product:   FromProduct(it.Product),
	}
}

func FromCart(items []models.CartItem) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, it := range items {
		line := FromCartItem(it)
		resp.Items = append(resp.Items, line)
		resp.Total += line.Subtotal
	}
	return resp
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	OrderID   *uint     `json:"orderId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromNotifications(ns []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type PaymentTokenRequest struct {
	OrderID       uint    `json:"orderId"`
	OrderNumber   string  `json:"orderNumber"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string  `json:"customerPhone"`
}

type PaymentTokenResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	Demo        bool   `json:"demo"`
}
