package main

import (
	"fmt"
	"log"
	"os"

	_ "tenure/docs"
	"tenure/internal/auth"
	"tenure/internal/config"
	"tenure/internal/models"
	"tenure/internal/queue"
	"tenure/internal/ratelimit"
	"tenure/internal/storage"
	"tenure/internal/tasks"
	"tenure/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Очередь участников Tenure
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка разбора конфигурации... ", err.Error())
	}

	db, err := storage.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных... ", err.Error())
	}

	// Мигрируется только таблица администраторов. Представление
	// active_member_queue_view принадлежит базе и приложением не создаётся.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	redisClient := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)

	hub := ws.NewHub()
	go hub.Run()

	accessor := queue.NewAccessor(db)
	aggregator := queue.NewAggregator(cfg.MaxWinnersPerPayout, cfg.DefaultPayoutThreshold)

	planner := &tasks.Planner{
		Source:   accessor,
		Agg:      aggregator,
		Redis:    redisClient,
		Hub:      hub,
		CacheTTL: cfg.StatsCacheTTL(),
	}
	planner.InitScheduler()

	handler := &queue.Handler{
		Source:      accessor,
		Agg:         aggregator,
		Redis:       redisClient,
		CacheTTL:    cfg.StatsCacheTTL(),
		NotFound404: cfg.MemberNotFound404,
		Production:  cfg.IsProduction(),
	}

	authService := auth.NewService(db, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	limiter := ratelimit.New(cfg.RateLimitWindow(), cfg.RateLimitMaxRequests)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(limiter.Middleware())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", handler.HealthHandler)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authService.Login)
		authGroup.POST("/register", authService.Register)
		authGroup.POST("/refresh", authService.RefreshToken)
	}

	api := r.Group("/api/queue")
	{
		api.GET("/health", handler.HealthHandler)
		api.GET("/ws", hub.Handler)
	}

	protected := r.Group("/api/queue", authService.Middleware())
	{
		protected.GET("", handler.GetQueueHandler)
		protected.GET("/statistics", handler.GetStatisticsHandler)
		protected.GET("/:memberId", handler.GetMemberHandler)

		// Легаси-мутации: членство в очереди вычисляет представление,
		// путь записи удалён. Маршруты остаются ради обратной совместимости.
		positionRoute := queue.Deprecated("queue positions are assigned by the membership view")
		createRoute := queue.Deprecated("queue members are created by subscription activation")
		deleteRoute := queue.Deprecated("queue members are removed by subscription cancellation")
		protected.PUT("/:memberId/position", positionRoute.Wrap(cfg.DeprecatedGone, handler.UpdatePositionHandler))
		protected.POST("", createRoute.Wrap(cfg.DeprecatedGone, handler.CreateMemberHandler))
		protected.DELETE("/:memberId", deleteRoute.Wrap(cfg.DeprecatedGone, handler.DeleteMemberHandler))
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
