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

	"github.com/yourusername/curioscope-api/internal/config"
	"github.com/yourusername/curioscope-api/internal/detection"
	"github.com/yourusername/curioscope-api/internal/handler"
	"github.com/yourusername/curioscope-api/internal/insight"
	"github.com/yourusername/curioscope-api/internal/middleware"
	redisRepo "github.com/yourusername/curioscope-api/internal/repository/redis"
	sqliteRepo "github.com/yourusername/curioscope-api/internal/repository/sqlite"
	"github.com/yourusername/curioscope-api/internal/service"
	"github.com/yourusername/curioscope-api/internal/session"
	"github.com/yourusername/curioscope-api/pkg/auth"
	"github.com/yourusername/curioscope-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к SQLite
	db, err := database.NewSQLiteDB(cfg.Database.Path)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := sqliteRepo.NewUserRepo(db)
	scoreRepo := sqliteRepo.NewScoreRepo(db)
	feedbackRepo := sqliteRepo.NewFeedbackRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT и хранилище сессий
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}
	sessionStore := session.NewStore()

	// Инициализируем детектор объектов
	detector, err := detection.NewYOLODetector(detection.DefaultYOLOConfig(cfg.Detection.ModelPath, cfg.Detection.ClassNamesPath))
	if err != nil {
		log.Printf("Failed to load detection model: %v", err)
		os.Exit(1)
	}
	defer detector.Close()
	scanRunner := detection.NewCameraRunner(cfg.Detection.CameraDevice, detector, detection.DefaultConfig())

	// Инициализируем клиент генеративной модели
	geminiClient, err := insight.NewGeminiClient(insight.GeminiConfig{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		TimeoutSec: cfg.Gemini.TimeoutSec,
	})
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v", err)
		os.Exit(1)
	}

	// Почтовые уведомления опциональны
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		emailService = service.NewNoopEmailService()
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService, sessionStore)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	scanService := service.NewScanService(scanRunner)
	insightService := service.NewInsightService(geminiClient)
	quizService := service.NewQuizService(scoreRepo, cacheRepo)
	leaderboardService := service.NewLeaderboardService(scoreRepo, cacheRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, emailService, cfg.Email.AlertTo, cfg.Email.LowRatingMax)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler()
	scanHandler := handler.NewScanHandler(scanService, jwtService)
	insightHandler := handler.NewInsightHandler(insightService)
	quizHandler := handler.NewQuizHandler(quizService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionStore)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
		}

		// Таблица лидеров доступна без входа
		api.GET("/leaderboard", leaderboardHandler.Get)
		api.GET("/leaderboard/export", leaderboardHandler.Export)

		// WebSocket аутентифицируется токеном в query-параметре
		api.GET("/scan/progress", scanHandler.Progress)

		authed := api.Group("/")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/session", sessionHandler.Get)
			authed.POST("/session/reset", sessionHandler.Reset)
			authed.POST("/session/theme", sessionHandler.ToggleTheme)

			authed.POST("/scan", scanHandler.Scan)

			authed.POST("/insights", insightHandler.Generate)
			authed.GET("/insights", insightHandler.Get)

			authed.POST("/quiz/answer", quizHandler.Answer)
			authed.POST("/quiz/submit", quizHandler.Submit)

			authed.POST("/feedback", feedbackHandler.Submit)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами.
	// WriteTimeout должен покрывать блокирующий /api/scan: окно детекции
	// длится десять секунд плюс открытие камеры
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	if sqlDB, err := database.GetSQLDB(db); err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
	} else if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server exited properly")
}
