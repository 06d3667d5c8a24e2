package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", guards.Auth, h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	user := req.ToModel()
	if err := h.authService.RegisterUser(c.UserContext(), user); err != nil {
		return err
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return c.Status(fiber.StatusCreated).JSON(dto.Message("User registered successfully", dto.FromUser(*user)))
}

// HandleLogin exchanges credentials for a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.Message("Login successful", dto.LoginResponse{
		Token: token,
		User:  dto.FromUser(*user),
	}))
}

// HandleMe returns the authenticated user's profile.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromUser(*user)))
}
