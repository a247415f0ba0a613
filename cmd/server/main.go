package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeroongit/Smart-news-hub/internal/auth"
	"github.com/zeroongit/Smart-news-hub/internal/config"
	"github.com/zeroongit/Smart-news-hub/internal/handler"
	"github.com/zeroongit/Smart-news-hub/internal/infrastructure/database"
	"github.com/zeroongit/Smart-news-hub/internal/logger"
	"github.com/zeroongit/Smart-news-hub/internal/metrics"
	"github.com/zeroongit/Smart-news-hub/internal/middleware"
	"github.com/zeroongit/Smart-news-hub/internal/repository"
	"github.com/zeroongit/Smart-news-hub/internal/service"
	"github.com/zeroongit/Smart-news-hub/internal/validator"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)

	poolCfg := database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}

	if cfg.RunMigrations {
		if err := database.Migrate(poolCfg.URL(), cfg.MigrationsDir); err != nil {
			logger.Fatal("Failed to run migrations",
				slog.String("error", err.Error()))
		}
	}

	pool, err := database.NewPostgres(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	articleRepo := repository.NewPostgresArticleRepository(pool)
	userRepo := repository.NewPostgresUserRepository(pool)

	// Initialize services
	v := validator.NewValidator()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	viewTracker := service.NewViewTracker(articleRepo, cfg.ViewWorkerCount, cfg.ViewQueueSize)
	articleService := service.NewArticleService(articleRepo, viewTracker, v, cfg.AdminPublishDirect, cfg.DefaultCategory)
	authService := service.NewAuthService(userRepo, tokens, v, cfg.BcryptCost)

	// Initialize handlers
	articleHandler := handler.NewArticleHandler(articleService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(pool)
	uploadHandler, err := handler.NewUploadHandler(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		logger.Fatal("Failed to create upload handler",
			slog.String("error", err.Error()))
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded images are served as static files
	router.Static("/uploads", cfg.UploadDir)

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		news := v1.Group("/news")
		{
			// Public read surface
			news.GET("", articleHandler.ListPublic)
			news.GET("/categories", articleHandler.ListCategories)
			news.GET("/category/:categorySlug", articleHandler.ListByCategory)
			news.GET("/slug/:slug", articleHandler.GetBySlug)

			// Authenticated write surface
			authed := news.Group("", middleware.Authenticate(tokens))
			{
				authed.POST("", articleHandler.Submit)
				authed.PUT("/:id", articleHandler.Edit)
				authed.PUT("/:id/request-delete", articleHandler.RequestDelete)
				authed.GET("/user/:userId", articleHandler.ListByUser)
			}

			// Moderation surface
			admin := news.Group("", middleware.Authenticate(tokens), middleware.RequireAdmin())
			{
				admin.PUT("/:id/approve", articleHandler.Approve)
				admin.PUT("/:id/reject", articleHandler.Reject)
				admin.DELETE("/:id", articleHandler.AdminDelete)
				admin.GET("/admin/all", articleHandler.ListAll)
			}
		}

		uploads := v1.Group("/uploads", middleware.Authenticate(tokens))
		{
			uploads.POST("/image", uploadHandler.UploadImage)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Stop the async view pipeline before the pool goes away
	viewTracker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
