package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/nutricart/internal/api"
	"github.com/aaravmahajanofficial/nutricart/internal/api/handlers"
	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/cache"
	"github.com/aaravmahajanofficial/nutricart/internal/config"
	"github.com/aaravmahajanofficial/nutricart/internal/health"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/aaravmahajanofficial/nutricart/internal/telemetry"
	"github.com/aaravmahajanofficial/nutricart/pkg/sendgrid"
)

//go:generate swag init -g main.go -d ./,../../internal/api/handlers,../../internal/models -o ../../internal/docs

//	@title						NutriCart API
//	@version					1.0
//	@description				Grocery and diet subscription storefront.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initialising tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, err := repository.Open(ctx, &cfg.Database)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := repository.New(db)

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	catalogCache := cache.NewRedisCache(redisClient, cfg.Cache.DefaultTTL)

	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	healthChecks, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.Users, rateLimiter, jwtKey, cfg.Security.TokenTTL())
	productService := service.NewProductService(repos.Products, catalogCache, cfg.Cache.CatalogTTL)
	catalogService := service.NewCatalogService(repos.Catalog, repos.Products, catalogCache, cfg.Cache.CatalogTTL)
	cartService := service.NewCartService(repos.Carts, repos.Products, repos.Coupons)
	orderService := service.NewOrderService(repos.Orders, repos.Users, cartService, emailService)
	subscriptionService := service.NewSubscriptionService(repos.Users, emailService)

	router := api.NewRouter(api.Handlers{
		Users:         handlers.NewUserHandler(userService),
		Products:      handlers.NewProductHandler(productService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Carts:         handlers.NewCartHandler(cartService),
		Orders:        handlers.NewOrderHandler(orderService),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptionService),
	}, middleware.NewAuthMiddleware(jwtKey), healthChecks.Handler())

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Middleware chaining
	var handler http.Handler = router
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = telemetry.Handler(handler, "nutricart-api")

	// Setup http server
	server := http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.HTTPServer.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown failed", slog.String("error", err.Error()))
	}
}
