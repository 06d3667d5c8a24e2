package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler issues payment-gateway tokens. It does not touch orders.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: newValidator(),
	}
}

func (h *PaymentHandler) RegisterRoutes(router fiber.Router, _ middleware.Guards) {
	router.Post("/payments/token", h.HandleCreateToken)
}

func (h *PaymentHandler) HandleCreateToken(c *fiber.Ctx) error {
	var req dto.PaymentTokenRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	token, err := h.service.CreateToken(c.UserContext(), services.PaymentTokenRequest{
		OrderID:       req.OrderID,
		OrderNumber:   req.OrderNumber,
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.PaymentTokenResponse{
		Token:       token.Token,
		RedirectURL: token.RedirectURL,
		Demo:        token.Demo,
	}))
}
