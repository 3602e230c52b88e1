package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-viewer/internal/cache"
	"github.com/umalmyha/customers-viewer/internal/config"
	"github.com/umalmyha/customers-viewer/internal/infra"
	"github.com/umalmyha/customers-viewer/internal/session"
	"golang.org/x/sync/errgroup"
)

const DefaultRedisConnectTimeout = 5 * time.Second

// @title       Customers viewer API
// @version     1.0
// @description Customer listing backed by AppSync GraphQL with role filter and name search
// @BasePath    /
func main() {
	cfg, err := config.Build(".env")
	if err != nil {
		logrus.Fatal(err)
	}

	logger, err := infra.Logger(cfg.LogCfg)
	if err != nil {
		logrus.Fatal(err)
	}
	logger.WithFields(logrus.Fields{
		"endpoint":     cfg.AppSyncCfg.Endpoint,
		"cache":        cfg.CacheCfg.Backend,
		"fetch_policy": cfg.CacheCfg.FetchPolicy,
	}).Info("configuration loaded")

	var redisClient *redis.Client
	if cfg.CacheCfg.Backend == cache.BackendRedis {
		redisClient, err = connectToRedis(cfg.RedisCfg)
		if err != nil {
			logger.Fatal(err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Errorf("failed to close redis connection - %v", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e, sessions, err := infra.Router(cfg, redisClient, reg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	if err := start(e, sessions, cfg.HTTPCfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func connectToRedis(cfg config.RedisCfg) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultRedisConnectTimeout)
	defer cancel()
	return infra.Redis(ctx, cfg)
}

func start(e *echo.Echo, sessions session.Worker, cfg config.HTTPCfg, logger logrus.FieldLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("starting http server on port %d", cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutting down the server, unexpected error occurred - %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Listen(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutdown signal has been sent, stopping the server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		sessions.Stop()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server gracefully - %w", err)
		}
		return nil
	})

	return g.Wait()
}
