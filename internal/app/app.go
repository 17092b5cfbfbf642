package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/config"
	"github.com/runwayrivets/pictopost-api/internal/ebay"
	"github.com/runwayrivets/pictopost-api/internal/handler"
	"github.com/runwayrivets/pictopost-api/internal/repository"
	"github.com/runwayrivets/pictopost-api/internal/service"
	"github.com/runwayrivets/pictopost-api/internal/utils"
	"github.com/runwayrivets/pictopost-api/pkg/observability"
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

	cipher := utils.NewKeyCipher(cfg.AI.EncryptionSecret)
	usageLimiter := service.NewUsageLimiter(infra.Redis(), infra.Logger())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	gateway := ai.NewGateway(cfg.AI, repos.AIUsage, usageLimiter, infra.Logger())
	ebayClient := ebay.NewClient(cfg.EBay.BaseURL(), cfg.EBay.RequestTimeout.Duration)

	userService := service.NewUserService(repos.User, repos.Listing, repos.AIUsage, cipher, infra.Logger())
	draftService := service.NewDraftService(cfg.Staging, infra.Logger())
	listingService := service.NewListingService(repos.User, repos.Listing, gateway, draftService, ebayClient, cipher, infra.Logger())

	userHandler := handler.NewUserHandler(userService)
	providerHandler := handler.NewProviderHandler(userService, gateway)
	draftHandler := handler.NewDraftHandler(draftService, cfg.Staging.MaxDrafts)
	listingHandler := handler.NewListingHandler(listingService)
	ebayHandler := handler.NewEBayHandler()

	router := gin.Default()
	router.Use(otelgin.Middleware("pictopost-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.MaxMultipartMemory = cfg.Staging.MaxUploadSize

	setupRoutes(router, cfg, userHandler, providerHandler, draftHandler, listingHandler, ebayHandler, rateLimiter, healthChecker, infra.MetricsHandler())

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
	userHandler *handler.UserHandler,
	providerHandler *handler.ProviderHandler,
	draftHandler *handler.DraftHandler,
	listingHandler *handler.ListingHandler,
	ebayHandler *handler.EBayHandler,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	limited := func(keyFunc func(*gin.Context) string) gin.HandlerFunc {
		return handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, keyFunc)
	}

	api := router.Group("/api/v1")
	{
		aiGroup := api.Group("/ai")
		{
			aiGroup.GET("/providers", providerHandler.List)
			aiGroup.POST("/validate", providerHandler.ValidateKey)
			aiGroup.POST("/validate-live", limited(handler.IPBasedKey), providerHandler.ValidateKeyLive)
		}

		api.GET("/ebay/categories", ebayHandler.Categories)

		api.POST("/users", userHandler.CreateOrFetch)

		users := api.Group("/users/:user_id")
		{
			users.GET("", userHandler.Get)
			users.DELETE("", userHandler.Delete)
			users.GET("/stats", userHandler.Stats)
			users.GET("/ai-usage", userHandler.AIUsage)
			users.PUT("/preferences", userHandler.UpdatePreferences)
			users.POST("/ebay-credentials", userHandler.SetEBayCredentials)

			users.POST("/ai-provider", providerHandler.SetAIProvider)
			users.GET("/ai-provider", providerHandler.GetAIProvider)
			users.DELETE("/ai-provider", providerHandler.ClearAIProvider)

			users.POST("/drafts", draftHandler.Upload)
			users.GET("/drafts", draftHandler.List)
			users.GET("/drafts/:filename", draftHandler.Serve)
			users.DELETE("/drafts/:filename", draftHandler.Delete)

			users.POST("/listings/generate", limited(handler.UserBasedKey), listingHandler.Generate)
			users.GET("/listings", listingHandler.List)
			users.GET("/listings/:listing_id", listingHandler.Get)
			users.DELETE("/listings/:listing_id", listingHandler.Delete)
			users.POST("/listings/:listing_id/publish", listingHandler.Publish)
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
