package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fairwayclub/fantasy-golf/internal/api/handlers"
	"github.com/fairwayclub/fantasy-golf/internal/api/middleware"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/config"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// Services bundles everything the routes depend on
type Services struct {
	Cache        *services.CacheService
	Settings     *services.SettingsService
	Scores       *services.ScoreService
	Leaderboards *services.LeaderboardService
	Picks        *services.PickService
	Pricing      *services.PricingService
	SMS          services.SMSService
	Hub          *services.Hub
	Scheduler    *services.Scheduler
}

// SetupRoutes wires every endpoint onto the engine
func SetupRoutes(router *gin.Engine, db *database.DB, cfg *config.Config, svc *Services, logger *logrus.Logger) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(db, svc.Scheduler)
	authHandler := handlers.NewAuthHandler(db, cfg, svc.Cache, svc.SMS, logger)
	golferHandler := handlers.NewGolferHandler(db, svc.Pricing, logger)
	tournamentHandler := handlers.NewTournamentHandler(db, svc.Scores, logger)
	scoreHandler := handlers.NewScoreHandler(db, svc.Scores)
	pickHandler := handlers.NewPickHandler(svc.Picks, svc.Settings)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.Leaderboards, svc.Settings)
	seasonHandler := handlers.NewSeasonHandler(db, logger)
	settingHandler := handlers.NewSettingHandler(svc.Settings)

	router.GET("/health", healthHandler.Check)
	router.GET("/ws", svc.Hub.ServeWS)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/auth/phone/send-code", authHandler.SendPhoneCode)
		authed.POST("/auth/phone/verify", authHandler.VerifyPhone)

		authed.GET("/golfers", golferHandler.List)
		authed.GET("/golfers/:id", golferHandler.Get)

		authed.GET("/tournaments", tournamentHandler.List)
		authed.GET("/tournaments/:id", tournamentHandler.Get)
		authed.GET("/tournaments/:id/scores", scoreHandler.ListByTournament)

		authed.GET("/team", pickHandler.GetMyTeam)
		authed.PUT("/team", pickHandler.SaveMyTeam)
		authed.GET("/team/transfers", pickHandler.TransferHistory)

		authed.GET("/leaderboard", leaderboardHandler.Get)
		authed.GET("/leaderboard/full", leaderboardHandler.GetFull)
		authed.GET("/leaderboard/tournaments/:id", leaderboardHandler.GetTournament)

		authed.GET("/seasons", seasonHandler.List)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.AdminRequired())
	{
		admin.POST("/golfers", golferHandler.Create)
		admin.PUT("/golfers/:id", golferHandler.Update)
		admin.DELETE("/golfers/:id", golferHandler.Delete)
		admin.POST("/golfers/recalculate-prices", golferHandler.RecalculatePrices)

		admin.POST("/tournaments", tournamentHandler.Create)
		admin.PUT("/tournaments/:id", tournamentHandler.Update)
		admin.DELETE("/tournaments/:id", tournamentHandler.Delete)
		admin.POST("/tournaments/:id/recalculate", tournamentHandler.Recalculate)
		admin.POST("/tournaments/:id/scores", scoreHandler.Enter)
		admin.POST("/tournaments/:id/scores/bulk", scoreHandler.BulkEnter)

		admin.POST("/seasons", seasonHandler.Create)
		admin.PUT("/seasons/:id", seasonHandler.Update)
		admin.POST("/seasons/:id/activate", seasonHandler.Activate)

		admin.GET("/settings", settingHandler.List)
		admin.PUT("/settings/:key", settingHandler.Set)
	}
}
