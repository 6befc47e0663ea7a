package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nutriacai/wellness-api/internal/config"
	"github.com/nutriacai/wellness-api/internal/handler"
	"github.com/nutriacai/wellness-api/internal/payment"
	"github.com/nutriacai/wellness-api/internal/repository"
	"github.com/nutriacai/wellness-api/internal/service"
	"github.com/nutriacai/wellness-api/internal/utils"
	"github.com/nutriacai/wellness-api/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry.Duration)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	rewardsMetrics, err := observability.NewRewardsMetrics()
	if err != nil {
		infra.Logger().Warn("failed to register rewards metrics", zap.Error(err))
	}

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		cfg.Security.BCryptCost,
		infra.Logger(),
	)

	pointsService := service.NewPointsService(
		repos.Profile,
		repos.Completion,
		cfg.Rewards,
		rewardsMetrics,
		infra.Logger(),
	)

	stripeClient := payment.NewStripeClient(cfg.Stripe.APIBase, cfg.Stripe.SecretKey)
	confirmationGuard := service.NewConfirmationGuard(infra.Redis())

	checkoutService := service.NewCheckoutService(
		repos.Profile,
		stripeClient,
		confirmationGuard,
		cfg.Checkout,
		infra.Logger(),
	)

	goalService := service.NewGoalService(repos.Goal)

	authHandler := handler.NewAuthHandler(authService)
	rewardsHandler := handler.NewRewardsHandler(pointsService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	goalHandler := handler.NewGoalHandler(goalService)

	router := gin.Default()
	router.Use(otelgin.Middleware("wellness-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authHandler, rewardsHandler, checkoutHandler, goalHandler, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	rewardsHandler *handler.RewardsHandler,
	checkoutHandler *handler.CheckoutHandler,
	goalHandler *handler.GoalHandler,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				authHandler.Register,
			)
			auth.POST("/login",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				authHandler.Login,
			)
			auth.GET("/me", handler.AuthMiddleware(authService), authHandler.GetMe)
		}

		rewards := api.Group("/rewards", handler.AuthMiddleware(authService))
		{
			rewards.GET("/profile", rewardsHandler.GetProfile)
			rewards.GET("/tasks", rewardsHandler.ListTasks)
			rewards.POST("/tasks/complete", rewardsHandler.CompleteTask)
			rewards.POST("/streak", rewardsHandler.UpdateStreak)
			rewards.POST("/deduct", rewardsHandler.DeductPoints)
		}

		checkout := api.Group("/checkout", handler.AuthMiddleware(authService))
		{
			checkout.POST("/session",
				handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey),
				checkoutHandler.CreateSession,
			)
			checkout.POST("/confirm", checkoutHandler.Confirm)
		}

		goals := api.Group("/goals", handler.AuthMiddleware(authService))
		{
			goals.POST("", goalHandler.Create)
			goals.GET("", goalHandler.List)
			goals.PATCH("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
