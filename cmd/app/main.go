package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto_miner/internal/cache"
	"crypto_miner/internal/config"
	"crypto_miner/internal/db"
	httpServer "crypto_miner/internal/http"
	"crypto_miner/internal/http/handlers"
	"crypto_miner/internal/http/middleware"
	"crypto_miner/internal/logger"
	"crypto_miner/internal/repository"
	"crypto_miner/internal/service"
	"crypto_miner/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	rdb := connectRedis(cfg)

	stateRepo := repository.NewGameStateRepository(dbPool)
	profileRepo := repository.NewProfileRepository(dbPool)
	boardRepo := repository.NewLeaderboardRepository(dbPool)
	rewardRepo := repository.NewRewardRepository(dbPool)
	referralRepo := repository.NewReferralRepository(dbPool)

	stateCache := cache.New(rdb, cfg.CacheTTL)
	syncService := service.NewSyncService(stateRepo, stateCache, profileRepo, boardRepo)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, 24*time.Hour)
	rewards := service.NewRewardService(rewardRepo, cfg.RewardInterval)
	referrals := service.NewReferralService(referralRepo, profileRepo, syncService)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go rewards.Run(ctx)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(syncService, profileRepo, rewards, referrals, tokens, cfg)
	health := handlers.NewHealthHandler(dbPool, rdb, version)
	hub := ws.NewHub(syncService, cfg.TickInterval)
	limiter := middleware.NewRateLimiter(rdb)

	httpServer.RegisterRoutes(r, h, health, hub, limiter, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// cache and rate limiter both degrade gracefully without it.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Warn("redis not configured, running without fallback cache")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, running without fallback cache", "error", err)
		return nil
	}

	logger.Info("redis connected")
	return rdb
}
