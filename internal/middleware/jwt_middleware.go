package middleware

import (
	"strings"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
	"pharmahub/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const (
	localUserID = "user_id"
	localEmail  = "email"
	localRole   = "role"
)

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*services.Claims, error)
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.Unauthorized("Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) || parts[1] == "" {
		return "", apperrors.Unauthorized("Authorization header format must be 'Bearer <token>'")
	}
	return parts[1], nil
}

func storeClaims(c *fiber.Ctx, claims *services.Claims) {
	c.Locals(localUserID, claims.UserID)
	c.Locals(localEmail, claims.Email)
	c.Locals(localRole, claims.Role)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			log.Debugf("JWT validation failed: %v", err)
			return apperrors.Unauthorized("Invalid or expired token")
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is sent and lets
// anonymous or invalid requests through unchanged.
func OptionalAuth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, err := bearerToken(c); err == nil {
			if claims, err := validator.ValidateToken(tokenString); err == nil {
				storeClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// AdminOnly rejects authenticated callers without the admin role. It must run after
// AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(localRole).(string)
		if role != models.RoleAdmin {
			return apperrors.Forbidden("admin access required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id, if any.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok && id != 0
}

// Guards bundles the middleware route groups are built from.
type Guards struct {
	Auth     fiber.Handler
	Optional fiber.Handler
	Admin    fiber.Handler
}

func NewGuards(validator TokenValidator) Guards {
	return Guards{
		Auth:     AuthRequired(validator),
		Optional: OptionalAuth(validator),
		Admin:    AdminOnly(),
	}
}
