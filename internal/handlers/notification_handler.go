package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler serves the authenticated user's order notifications.
type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", guards.Auth, h.HandleGetNotifications)
	notificationRoutes.Put("/:id/read", guards.Auth, h.HandleMarkRead)
}

func (h *NotificationHandler) HandleGetNotifications(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	notifications, err := h.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromNotifications(notifications)))
}

func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.JSON(dto.Message("Notification marked as read", nil))
}
