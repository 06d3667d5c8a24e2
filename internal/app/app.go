// Package app assembles the HTTP application from its repositories, services and handlers.
package app

import (
	"context"
	"time"

	"pharmahub/internal/cache"
	"pharmahub/internal/config"
	"pharmahub/internal/database"
	"pharmahub/internal/handlers"
	"pharmahub/internal/middleware"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"
	"pharmahub/internal/services"
	"pharmahub/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const uploadsPath = "/uploads"

// Dependencies are the external resources the application runs on. Cache, MQ and Gateway
// are optional.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Cache   cache.Cache
	MQ      *rabbitmq.Client
	Gateway services.PaymentGateway
	// Clock overrides time.Now for order numbers.
	Clock func() time.Time
}

// Server is the assembled application.
type Server struct {
	App           *fiber.App
	Orders        *services.OrderService
	Notifications *services.NotificationService
}

// New wires repositories, services and handlers and registers every route under both
// /api and /api/v1.
func New(deps Dependencies) *Server {
	cfg := deps.Config
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	notificationRepo := repositories.NewGORMNotificationRepository(deps.DB)

	// --- Services ---
	var publisher services.EventPublisher
	if deps.MQ != nil {
		publisher = deps.MQ
	}

	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	productService := services.NewProductService(productRepo, deps.Cache, cfg.Cache.TTL)
	categoryService := services.NewCategoryService(categoryRepo, deps.Cache)
	cartService := services.NewCartService(cartRepo, productRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	paymentService := services.NewPaymentService(deps.Gateway, cfg.Payment.DemoMode)
	imageService := services.NewImageService(cfg.Upload.Dir, uploadsPath, cfg.Upload.MaxWidth, cfg.Upload.MaxHeight)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher, services.OrderConfig{
		NumberPrefix: cfg.Order.NumberPrefix,
		StockPolicy:  models.StockPolicy(cfg.Order.StockPolicy),
		VerifyPrices: cfg.Order.VerifyPrices,
		TaxRate:      cfg.Order.TaxRate,
		Clock:        deps.Clock,
	})

	orderService.Subscribe(productService.HandleOrderEvent)
	if deps.MQ == nil {
		// Without a broker the notification consumer never runs.
		orderService.Subscribe(notificationService.HandleOrderEvent)
	}

	// --- Handlers ---
	guards := middleware.NewGuards(authService)
	routes := []interface {
		RegisterRoutes(fiber.Router, middleware.Guards)
	}{
		handlers.NewAuthHandler(authService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewProductHandler(productService, imageService),
		handlers.NewCartHandler(cartService),
		handlers.NewOrderHandler(orderService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewPaymentHandler(paymentService),
	}

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "PharmaHub API",
		ErrorHandler: handlers.ErrorHandler(!cfg.IsProduction()),
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static(uploadsPath, cfg.Upload.Dir)
	app.Get("/health", healthHandler(deps))

	for _, prefix := range []string{"/api", "/api/v1"} {
		api := app.Group(prefix)
		for _, h := range routes {
			h.RegisterRoutes(api, guards)
		}
	}

	return &Server{
		App:           app,
		Orders:        orderService,
		Notifications: notificationService,
	}
}

func healthHandler(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := "healthy"
		dbStatus := "connected"
		if err := database.Ping(deps.DB); err != nil {
			dbStatus = "unavailable"
			status = "degraded"
		}

		mqStatus := "disabled"
		if deps.MQ != nil {
			mqStatus = "connected"
			if !deps.MQ.IsConnected() {
				mqStatus = "disconnected"
				status = "degraded"
			}
		}

		cacheStatus := "connected"
		if err := deps.Cache.Ping(ctx); err != nil {
			cacheStatus = "unavailable"
			status = "degraded"
		}

		code := fiber.StatusOK
		if dbStatus != "connected" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"rabbitmq": mqStatus,
			"cache":    cacheStatus,
		})
	}
}
