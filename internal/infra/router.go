package infra

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/umalmyha/customers-viewer/internal/appsync"
	"github.com/umalmyha/customers-viewer/internal/cache"
	"github.com/umalmyha/customers-viewer/internal/config"
	"github.com/umalmyha/customers-viewer/internal/handlers"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/middleware"
	"github.com/umalmyha/customers-viewer/internal/repository"
	"github.com/umalmyha/customers-viewer/internal/screen"
	"github.com/umalmyha/customers-viewer/internal/service"
	"github.com/umalmyha/customers-viewer/internal/session"
	"github.com/umalmyha/customers-viewer/internal/validation"
	"golang.org/x/time/rate"

	// swagger docs
	_ "github.com/umalmyha/customers-viewer/docs"
)

// Router builds http server with all routes and returns it together with sessions sweeper.
// Redis client is only required for redis cache backend.
func Router(cfg config.Config, redisClient *redis.Client, reg *prometheus.Registry, logger logrus.FieldLogger) (*echo.Echo, session.Worker, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler(e, logger)

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		return nil, nil, err
	}
	e.Renderer = renderer

	validator, err := validation.NewEnglish()
	if err != nil {
		return nil, nil, err
	}
	e.Validator = validator

	// Metrics
	recorder := metrics.NewRecorder(reg)

	// Clients
	queryClient := appsync.NewQueryClient(appsync.Cfg{
		Endpoint: cfg.AppSyncCfg.Endpoint,
		APIKey:   cfg.AppSyncCfg.APIKey,
		Timeout:  cfg.AppSyncCfg.Timeout,
	}, recorder, logger)

	// Caches
	listCache := customerListCache(cfg.CacheCfg, redisClient)

	// Repositories
	customerRps := repository.NewAppsyncCustomerRepository(queryClient, listCache, cfg.CacheCfg.FetchPolicy, recorder, logger)

	// Services
	customerSvc := service.NewCustomerService(customerRps)

	// Sessions
	sessions := session.NewRegistry(
		session.Cfg{IdleTimeout: cfg.SessionCfg.IdleTimeout, SweepInterval: cfg.SessionCfg.SweepInterval},
		func() *screen.UserList { return screen.NewUserList(customerSvc, recorder, logger) },
		recorder,
		logger,
	)

	// Handlers
	screenHandler := handlers.NewScreenHTTPHandler(logger)
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc)
	healthHandler := handlers.NewHealthHTTPHandler(healthChecks(redisClient)...)

	// Middleware
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMw.Recover())
	e.Use(middleware.RequestLogger(logger))
	sessionMw := middleware.Session(sessions, cfg.SessionCfg.IdleTimeout)
	rateLimitMw := echoMw.RateLimiter(echoMw.NewRateLimiterMemoryStore(rate.Limit(cfg.HTTPCfg.RateLimit)))

	// screens
	screens := e.Group("", sessionMw)
	screens.GET("/", screenHandler.Home)
	screens.GET("/users", screenHandler.UserList)
	screens.POST("/users/role", screenHandler.SelectRole)
	screens.POST("/users/refresh", screenHandler.Refresh)
	screens.POST("/back", screenHandler.Back)

	// API routes
	api := e.Group("/api", rateLimitMw)

	// customers
	customersApi := api.Group("/customers")
	customersApi.GET("", customerHandler.GetAll)
	customersApi.POST("/refresh", customerHandler.Refresh)

	// service routes
	e.GET("/healthz", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, sessions, nil
}

func customerListCache(cfg config.CacheCfg, redisClient *redis.Client) cache.CustomerListCache {
	if cfg.Backend == cache.BackendRedis {
		return cache.NewRedisCustomerListCache(redisClient, cfg.TimeToLive)
	}
	return cache.NewMemoryCustomerListCache(cfg.TimeToLive)
}

func healthChecks(redisClient *redis.Client) []handlers.HealthCheck {
	if redisClient == nil {
		return nil
	}

	return []handlers.HealthCheck{{
		Name: "redis",
		Probe: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}}
}
