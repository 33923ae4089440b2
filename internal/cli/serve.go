package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/bookstore-api/docs"
	"github.com/aaravmahajanofficial/bookstore-api/internal/api"
	"github.com/aaravmahajanofficial/bookstore-api/internal/api/handlers"
	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/cache"
	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/aaravmahajanofficial/bookstore-api/internal/events"
	"github.com/aaravmahajanofficial/bookstore-api/internal/health"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/telemetry"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(config.MustLoad(rootOpts.ConfigPath))
		},
	}
}

func runServe(cfg *config.Config) error {

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Otel, cfg.Env)
	if err != nil {
		return fmt.Errorf("tracing setup: %w", err)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		return err
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		return err
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	appCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error flushing event publisher", slog.String("error", err.Error()))
		}
	}()

	catalogService := service.NewCatalogService(repos.Author, repos.Category, repos.Book, repos.Review, appCache, cfg.Cache.BookListTTL)
	reviewService := service.NewReviewService(repos.Review, repos.Book)
	cartService := service.NewCartService(repos.Cart, repos.Book)
	wishlistService := service.NewWishlistService(repos.Wishlist, repos.Book)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, repos.Checkout, publisher)
	userService := service.NewUserService(
		repos.User,
		repository.NewLoginLimiter(redisClient, cfg.RateConfig),
		repository.NewResetTokenRepo(redisClient),
		publisher,
		cfg,
	)
	paymentService := service.NewPaymentService()

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		return err
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	api.RegisterRoutes(routerMux, &api.Handlers{
		User:     handlers.NewUserHandler(userService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Review:   handlers.NewReviewHandler(reviewService),
		Cart:     handlers.NewCartHandler(cartService),
		Wishlist: handlers.NewWishlistHandler(wishlistService),
		Order:    handlers.NewOrderHandler(orderService),
		Payment:  handlers.NewPaymentHandler(paymentService),
	}, authMiddleware)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining; metrics sits inside logging so it sees the
	// request the mux annotates with its pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "bookstore-api")

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			serverErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serverErr:
		return err
	}

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	return nil
}
