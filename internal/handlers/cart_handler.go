package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the authenticated user's shopping cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    newValidator(),
	}
}

func (h *CartHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", guards.Auth, h.HandleGetCart)
	cartRoutes.Delete("/", guards.Auth, h.HandleClearCart)
	cartRoutes.Post("/items", guards.Auth, h.HandleAddItem)
	cartRoutes.Put("/items/:productId", guards.Auth, h.HandleSetQuantity)
	cartRoutes.Delete("/items/:productId", guards.Auth, h.HandleRemoveItem)
}

func (h *CartHandler) respondWithCart(c *fiber.Ctx, userID uint, message string) error {
	items, err := h.cartService.GetCart(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Message(message, dto.FromCart(items)))
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	return h.respondWithCart(c, userID, "")
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	var req dto.AddCartItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	if _, err := h.cartService.AddItem(c.UserContext(), userID, req.ProductID, req.Quantity); err != nil {
		return err
	}
	return h.respondWithCart(c, userID, "Item added to cart")
}

// HandleSetQuantity sets a line's quantity. Zero or less removes the line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	var req dto.UpdateCartItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.cartService.SetQuantity(c.UserContext(), userID, productID, req.Quantity); err != nil {
		return err
	}
	return h.respondWithCart(c, userID, "Cart updated")
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.cartService.RemoveItem(c.UserContext(), userID, productID); err != nil {
		return err
	}
	return h.respondWithCart(c, userID, "Item removed from cart")
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	if err := h.cartService.ClearCart(c.UserContext(), userID); err != nil {
		return err
	}
	return h.respondWithCart(c, userID, "Cart cleared")
}
