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

	"github.com/yourusername/vocab-api/internal/config"
	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/handler"
	"github.com/yourusername/vocab-api/internal/middleware"
	pgRepo "github.com/yourusername/vocab-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/vocab-api/internal/repository/redis"
	"github.com/yourusername/vocab-api/internal/service"
	"github.com/yourusername/vocab-api/pkg/auth"
	"github.com/yourusername/vocab-api/pkg/database"
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

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
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
	userRepo := pgRepo.NewUserRepo(db)
	wordRepo := pgRepo.NewWordRepo(db)
	wordRequestRepo := pgRepo.NewWordRequestRepo(db)
	sessionRepo := pgRepo.NewGameSessionRepo(db)
	achievementRepo := pgRepo.NewAchievementRepo(db)
	refreshTokenRepo := pgRepo.NewRefreshTokenRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWTService
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Почтовый сервис: noop, если ключ провайдера не задан
	var emailService service.EmailService
	if cfg.Email.APIKey != "" {
		emailService = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
	} else {
		emailService = service.NewNoopEmailService()
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, refreshTokenRepo, jwtService,
		time.Duration(cfg.Auth.RefreshTokenLifetime)*time.Hour)
	gameService := service.NewGameService(sessionRepo, userRepo, achievementRepo, cacheRepo, db)
	leaderboardService := service.NewLeaderboardService(userRepo)
	wordService := service.NewWordService(wordRepo, wordRequestRepo, userRepo, emailService, db)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	wordHandler := handler.NewWordHandler(wordService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Фоновая очистка истекших refresh-токенов
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n, err := refreshTokenRepo.DeleteExpired(); err != nil {
					log.Printf("Ошибка при очистке истекших refresh-токенов: %v", err)
				} else if n > 0 {
					log.Printf("Удалено %d истекших refresh-токенов", n)
				}
			case <-ctx.Done():
				log.Println("Завершение работы горутины очистки токенов")
				return
			}
		}
	}()

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
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
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8081", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			strict := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
			authGroup.POST("/register", strict, authHandler.Register)
			authGroup.POST("/login", strict, authHandler.Login)
			authGroup.POST("/refresh", rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()), authHandler.Refresh)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/logout", authHandler.Logout)
				authedAuth.GET("/me", authHandler.GetMe)
			}
		}

		// Словарь: случайная выборка для игры доступна всем аутентифицированным
		words := api.Group("/words")
		words.Use(authMiddleware.RequireAuth())
		{
			words.GET("/random", wordHandler.GetRandomWords)
			words.GET("/:id", wordHandler.GetWord)

			// Заявки учителей на добавление слов
			words.POST("/requests", authMiddleware.RequireRole(entity.RoleTeacher, entity.RoleAdmin), wordHandler.SuggestWord)
			words.GET("/requests", authMiddleware.RequireRole(entity.RoleTeacher, entity.RoleAdmin), wordHandler.ListWordRequests)
		}

		// Игровые сессии и статистика
		games := api.Group("/games")
		games.Use(authMiddleware.RequireAuth())
		{
			games.POST("/sessions", rateLimiter.LimitByUser(middleware.SubmitSessionRateLimitConfig()), gameHandler.SubmitSession)
			games.GET("/sessions", gameHandler.GetMySessions)
			games.GET("/stats", gameHandler.GetMyStats)
		}

		// Лидерборд (публичный маршрут)
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// Административные маршруты
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin))
		{
			admin.GET("/words", wordHandler.ListWords)
			admin.POST("/words", wordHandler.CreateWord)
			admin.PUT("/words/:id", wordHandler.UpdateWord)
			admin.PUT("/word-requests/:id", wordHandler.ReviewWordRequest)
			admin.GET("/leaderboard", leaderboardHandler.GetAdminLeaderboard)
			admin.GET("/leaderboard/export", leaderboardHandler.ExportLeaderboard)
			admin.GET("/users/:id/stats", gameHandler.GetUserStats)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
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

	// Ждем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
