package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"pharmahub/internal/app"
	"pharmahub/internal/cache"
	"pharmahub/internal/config"
	"pharmahub/internal/database"
	"pharmahub/internal/logger"
	"pharmahub/internal/services"
	"pharmahub/pkg/payment"
	"pharmahub/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.Database, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if cfg.Database.Seed {
		if err := database.Seed(context.Background(), db, cfg.Database.AdminPassword); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// --- Catalog cache ---
	var catalogCache cache.Cache
	if cfg.Cache.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		catalogCache = redisCache
	} else {
		log.Info("REDIS_URL not set, using in-process catalog cache")
		catalogCache = cache.NewMemory()
	}
	defer catalogCache.Close()

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Info("RABBITMQ_URL not set, order events are handled in-process")
	}

	// --- Payment gateway ---
	var gateway services.PaymentGateway
	if !cfg.Payment.DemoMode {
		gateway = payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.ServerKey)
	}

	server := app.New(app.Dependencies{
		Config:  cfg,
		DB:      db,
		Cache:   catalogCache,
		MQ:      mqClient,
		Gateway: gateway,
	})

	// --- Start RabbitMQ Consumer ---
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			log.WithField("routing_key", msg.RoutingKey).Debugf("Received order event (tag %d)", msg.DeliveryTag)
			return server.Notifications.HandleMessage(context.Background(), msg.Body)
		}
		if err := mqClient.ConsumeOrderEvents(messageHandler); err != nil {
			log.Errorf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.App.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := server.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Server gracefully stopped")
}
