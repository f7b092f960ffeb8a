package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devboard/devboard/internal/authz"
	"github.com/devboard/devboard/internal/config"
	"github.com/devboard/devboard/internal/database"
	"github.com/devboard/devboard/internal/handlers"
	"github.com/devboard/devboard/internal/logger"
	"github.com/devboard/devboard/internal/middleware"
	"github.com/devboard/devboard/internal/notify"
	"github.com/devboard/devboard/internal/repository"
	"github.com/devboard/devboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zapLogger, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations and seed the initial admin account
	if err := database.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.SeedAdmin(database.GetDB(), cfg.AdminPassword); err != nil {
		zapLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		zapLogger.Fatal("Failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("devboard_session", store))

	// Event sink for push updates
	eventClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr()})
	sink := notify.NewRedisSink(eventClient, zapLogger)

	// Initialize repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Initialize services
	taskService := services.NewTaskService(taskRepo, userRepo, sink)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, sink)
	dashboardService := services.NewDashboardService(dashboardRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	developerHandler := handlers.NewDeveloperHandler(userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "DevBoard API is running",
		})
	})

	// Custom link session bootstrap (public)
	r.GET("/dev/:link", authHandler.CustomLinkAccess)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		// Authenticated routes
		auth := api.Group("")
		auth.Use(middleware.RequireAuth())
		{
			auth.GET("/me", authHandler.GetCurrentUser)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/security-check", authHandler.SecurityCheck)
			auth.GET("/users", developerHandler.ListUsers)
			auth.GET("/developers", developerHandler.ListDevelopers)
			auth.POST("/developers", middleware.RequireAction(authz.ActionProvisionDeveloper), developerHandler.ProvisionDeveloper)
			auth.POST("/developers/:id/link", middleware.RequireAction(authz.ActionGenerateLink), developerHandler.GenerateLink)

			tasks := auth.Group("/tasks")
			{
				tasks.GET("", middleware.RequireAction(authz.ActionViewTasks), taskHandler.ListTasks)
				tasks.GET("/mine", middleware.RequireAction(authz.ActionViewTasks), taskHandler.ListMyTasks)
				tasks.GET("/claimable", middleware.RequireAction(authz.ActionViewClaimable), taskHandler.ListClaimableTasks)
				tasks.POST("", middleware.RequireAction(authz.ActionCreateTask), taskHandler.CreateTask)
				tasks.GET("/:id", middleware.RequireAction(authz.ActionViewTasks), taskHandler.GetTask)
				tasks.PUT("/:id", middleware.RequireAction(authz.ActionEditTask), taskHandler.UpdateTask)
				tasks.DELETE("/:id", middleware.RequireAction(authz.ActionDeleteTask), taskHandler.DeleteTask)
				tasks.POST("/:id/claim", middleware.RequireAction(authz.ActionClaimTask), taskHandler.ClaimTask)
				tasks.POST("/:id/advance", middleware.RequireAction(authz.ActionAdvanceTask), taskHandler.AdvanceTask)
			}

			auth.GET("/dashboard/stats", middleware.RequireAction(authz.ActionViewDashboard), dashboardHandler.Stats)

			auth.POST("/notifications", middleware.RequireAction(authz.ActionSendNotification), notificationHandler.SendNotification)
			auth.GET("/notifications", notificationHandler.ListNotifications)
			auth.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}
	}

	// Start server
	zapLogger.Info("Server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
