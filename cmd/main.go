package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/auth"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/config"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/database"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/handlers"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/repository"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional leaderboard cache
	var redisClient *redis.Client
	if addr := cfg.GetRedisAddr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, leaderboard caching disabled: ", err)
			redisClient = nil
		}
	}

	db := database.GetDB()

	// Initialize repository and services
	repo := repository.NewRepository(db)
	authService := services.NewAuthService(db)
	teamService := services.NewTeamService(db)
	newsService := services.NewNewsService(db)
	leaderboardService := services.NewLeaderboardService(db, redisClient)
	settlementService := services.NewSettlementService(db, leaderboardService)
	matchService := services.NewMatchService(db, settlementService)
	predictionService := services.NewPredictionService(repo)

	// Seed the admin account if configured
	if err := authService.EnsureAdmin(context.Background(), cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		logger.Fatalf("Failed to seed admin account: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	newsHandler := handlers.NewNewsHandler(newsService)
	matchHandler := handlers.NewMatchHandler(matchService)
	predictionHandler := handlers.NewPredictionHandler(predictionService, settlementService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Set up Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public read routes
	router.GET("/api/teams", teamHandler.GetTeams)
	router.GET("/api/teams/:id", teamHandler.GetTeamByID)
	router.GET("/api/matches", matchHandler.GetMatches)
	router.GET("/api/matches/:id", matchHandler.GetMatchByID)
	router.GET("/api/news", newsHandler.GetNews)
	router.GET("/api/news/:id", newsHandler.GetNewsByID)
	router.GET("/api/leaderboard", leaderboardHandler.GetLeaderboard)
	router.GET("/api/leaderboard/stats", leaderboardHandler.GetStats)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/predictions", predictionHandler.CreatePrediction)
		api.GET("/predictions", predictionHandler.GetUserPredictions)
		api.GET("/leaderboard/my-rank", leaderboardHandler.GetMyRank)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		admin.POST("/teams", teamHandler.CreateTeam)
		admin.PUT("/teams/:id", teamHandler.UpdateTeam)
		admin.DELETE("/teams/:id", teamHandler.DeleteTeam)

		admin.POST("/matches", matchHandler.CreateMatch)
		admin.PUT("/matches/:id", matchHandler.UpdateMatch)
		admin.PUT("/matches/:id/finish", matchHandler.FinishMatch)
		admin.DELETE("/matches/:id", matchHandler.DeleteMatch)

		admin.POST("/news", newsHandler.CreateNews)
		admin.PUT("/news/:id", newsHandler.UpdateNews)
		admin.DELETE("/news/:id", newsHandler.DeleteNews)

		admin.GET("/predictions/all", predictionHandler.GetAllPredictions)
		admin.POST("/predictions/resettle", predictionHandler.ResettleFinishedMatches)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
