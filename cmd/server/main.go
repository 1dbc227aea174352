package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/config"
	"github.com/alisettar/Attend/internal/di"
	"github.com/alisettar/Attend/internal/router"
	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: !cfg.IsProduction(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tenants, err := cfg.LoadTenants()
	if err != nil {
		logger.Fatal("failed to load tenant directory", zap.Error(err))
	}
	directory, err := tenant.NewDirectory(tenants)
	if err != nil {
		logger.Fatal("invalid tenant directory", zap.Error(err))
	}
	resolver := tenant.NewResolver(directory)
	logger.Info("tenant directory loaded", zap.Strings("tenants", directory.IDs()))

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, rate limiting degraded", zap.Error(err))
		}
		cancel()
	}

	container := di.NewContainer(cfg, resolver, redisClient)
	defer container.Close()

	engine := router.New(cfg, container)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
