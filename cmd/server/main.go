package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fairwayclub/fantasy-golf/internal/api"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/config"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatalf("Invalid Redis URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warnf("Redis unreachable at startup, caching degraded: %v", err)
	}
	defer redisClient.Close()

	cache := services.NewCacheService(redisClient)
	settings := services.NewSettingsService(db, cache, cfg.SettingsCacheTTL)
	hub := services.NewHub(logger)
	scores := services.NewScoreService(db, cache, hub, logger)
	leaderboards := services.NewLeaderboardService(db, cache, cfg.LeaderboardCacheTTL, logger)
	picks := services.NewPickService(db, cache, logger)
	pricing := services.NewPricingService(db, logger)
	sms := services.NewSMSServiceFromConfig(cfg, logger)

	go hub.Run()

	var scheduler *services.Scheduler
	if cfg.EnableScheduler {
		scheduler = services.NewScheduler(scores, pricing, settings, logger, cfg.NightlyCron)
		if err := scheduler.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, db, cfg, &api.Services{
		Cache:        cache,
		Settings:     settings,
		Scores:       scores,
		Leaderboards: leaderboards,
		Picks:        picks,
		Pricing:      pricing,
		SMS:          sms,
		Hub:          hub,
		Scheduler:    scheduler,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
