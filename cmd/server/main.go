package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/application"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/config"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/estimate"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/email"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/events"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/middleware"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/routing"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "service-estimate"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-estimate",
		zap.String("port", cfg.Port),
	)

	// Initialize pricing and formatting
	pricingStrategy := estimate.NewStandardPricingStrategy(cfg.Pricing)
	currency, err := estimate.NewCurrencyFormatter(cfg.Currency.Locale, cfg.Currency.Symbol)
	if err != nil {
		log.Fatal("invalid currency config", zap.Error(err))
	}

	// Initialize route provider, cached through Redis when configured
	checks := map[string]handler.HealthCheck{}
	var router quote.RouteProvider = routing.NewGoogleDirectionsProvider(
		cfg.Google.BaseURL,
		cfg.Google.APIKey,
		cfg.Google.Region,
		log,
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		router = routing.NewCachingProvider(router, routing.NewRedisRouteCache(rdb, cfg.Redis.TTL), log)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("route cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Initialize event publisher
	var publisher application.EventPublisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, serviceName, log)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	// Initialize application services
	notificationConfig := application.NotificationConfig{
		APIKey:   cfg.Notification.APIKey,
		From:     cfg.Notification.From,
		NotifyTo: cfg.Notification.NotifyTo,
		Brand:    cfg.Notification.Brand,
	}
	notificationService := application.NewNotificationService(
		email.NewResendSender(cfg.Notification.Endpoint, cfg.Notification.APIKey),
		notificationConfig,
		publisher,
		log,
	)
	if !notificationConfig.IsComplete() {
		log.Warn("email configuration incomplete, estimate emails will fail until it is set")
	}

	quoteDeps := application.QuoteDependencies{
		Router:   router,
		Pricing:  pricingStrategy,
		Currency: currency,
		Notifier: application.NewLocalNotifier(notificationService),
		Logger:   log,
	}

	// Initialize HTTP handlers
	estimateHandler := handler.NewEstimateHandler(notificationService, log)
	quoteHandler := handler.NewQuoteHandler(quoteDeps)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(serviceName, checks)
	healthHandler.RegisterRoutes(engine)

	// Register routes. The estimate function answers its own preflight.
	estimateHandler.RegisterRoutes(&engine.RouterGroup)
	estimateHandler.RegisterFallback(engine)
	quoteHandler.RegisterRoutes(engine.Group("", middleware.CORSMiddleware()))

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-estimate...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-estimate stopped")
}
