package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/ai"
	"github.com/yourusername/interviewprep-api/internal/config"
	"github.com/yourusername/interviewprep-api/internal/handler"
	"github.com/yourusername/interviewprep-api/internal/middleware"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	pgRepo "github.com/yourusername/interviewprep-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/interviewprep-api/internal/repository/redis"
	"github.com/yourusername/interviewprep-api/internal/service"
	"github.com/yourusername/interviewprep-api/pkg/auth"
	"github.com/yourusername/interviewprep-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Printf("Failed to init logger: %v", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	isProduction := cfg.Server.Mode == gin.ReleaseMode
	gin.SetMode(cfg.Server.Mode)

	// PostgreSQL + миграции
	db, err := database.NewPostgresDB(cfg.Database, !isProduction)
	if err != nil {
		appLogger.Fatal("[Main] failed to connect to database", "error", err)
	}
	if err := database.MigrateDB(db, database.DefaultMigrationsPath, appLogger); err != nil {
		appLogger.Fatal("[Main] failed to migrate database", "error", err)
	}

	// Redis: кеш аналитики и rate limiting
	redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("[Main] failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		appLogger.Fatal("[Main] failed to create cache repository", "error", err)
	}

	// AI клиент создается один раз и передается сервисам
	generator, err := ai.NewGeminiClient(ctx, ai.GeminiConfig{
		APIKey:          cfg.AI.APIKey,
		Model:           cfg.AI.Model,
		Timeout:         cfg.AI.Timeout(),
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("[Main] failed to create ai client", "error", err)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		appLogger.Fatal("[Main] failed to create jwt service", "error", err)
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	sessionRepo := pgRepo.NewSessionRepo(db)
	mockRepo := pgRepo.NewMockInterviewRepo(db)

	// Сервисы
	statsCache := service.NewStatsCache(cacheRepo, cfg.Cache.AnalyticsTTL, appLogger)
	authService := service.NewAuthService(userRepo, jwtService, appLogger)
	quizService := service.NewQuizService(quizRepo, generator, statsCache, appLogger)
	resultService := service.NewResultService(quizRepo, resultRepo, statsCache, appLogger)
	sessionService := service.NewSessionService(sessionRepo, appLogger)
	aiService := service.NewAIService(generator, appLogger)
	mockService := service.NewMockInterviewService(mockRepo, generator, appLogger)

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, appLogger),
		User:    handler.NewUserHandler(authService, appLogger),
		Quiz:    handler.NewQuizHandler(quizService, resultService, cfg.Quiz.HideAnswersUntilSubmitted, appLogger),
		Session: handler.NewSessionHandler(sessionService, appLogger),
		AI:      handler.NewAIHandler(aiService, appLogger),
		Mock:    handler.NewMockInterviewHandler(mockService, appLogger),
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtService, appLogger)
	rateLimiter := middleware.NewRateLimiter(redisClient, appLogger)
	aiLimit := rateLimiter.Limit(middleware.AIRateLimitConfig(cfg.RateLimit.AIMaxRequests, cfg.RateLimit.AIWindow))

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(appLogger))

	// В production не доверяем прокси-заголовкам, в development доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		appLogger.Warn("[Main] failed to set trusted proxies", "error", err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	handler.RegisterRoutes(router.Group("/api"), handlers, authMiddleware, aiLimit)

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("[Main] starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("[Main] server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("[Main] shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("[Main] server forced to shutdown", "error", err)
		return
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		_ = sqlDB.Close()
	}
	appLogger.Info("[Main] server exited properly")
}
