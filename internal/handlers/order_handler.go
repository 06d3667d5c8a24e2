package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes. Checkout is open to guests; a bearer token,
// when present, ties the order to its user.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/user/:userId", h.HandleGetOrdersByUser)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/", guards.Optional, h.HandleCreateOrder)
	orderRoutes.Put("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Put("/:id/payment-status", h.HandleUpdatePaymentStatus)
}

// HandleGetOrders lists every order, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromOrders(orders)))
}

// HandleGetOrdersByUser lists one user's orders, newest first.
func (h *OrderHandler) HandleGetOrdersByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	orders, err := h.service.ListOrdersByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromOrders(orders)))
}

// HandleGetOrder retrieves a single order by order number or numeric id.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromOrder(*order)))
}

// HandleCreateOrder places an order and decrements stock in one transaction.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	in := req.ToInput()
	if in.UserID == nil {
		if userID, ok := middleware.UserID(c); ok {
			in.UserID = &userID
		}
	}

	result, err := h.service.CreateOrder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Message("Order created successfully", dto.FromCreateOrderResult(result)))
}

// HandleUpdateOrderStatus updates the fulfillment status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	result, err := h.service.UpdateOrderStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.Message("Order status updated successfully", dto.FromStatusResult(result)))
}

// HandleUpdatePaymentStatus updates the payment status of an existing order.
func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	var req dto.UpdatePaymentStatusRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	result, err := h.service.UpdatePaymentStatus(c.UserContext(), c.Params("id"), req.PaymentStatus)
	if err != nil {
		return err
	}
	return c.JSON(dto.Message("Payment status updated successfully", dto.FromStatusResult(result)))
}
