package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	postHTTP "snapfeed/internal/controller/http"
	"snapfeed/internal/repo/persistent"
	"snapfeed/internal/usecase"
	"snapfeed/pkg/config"
	"snapfeed/pkg/jwt"
	"snapfeed/pkg/logger"
	"snapfeed/pkg/middleware"
	"snapfeed/pkg/queue"
	"snapfeed/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "snapfeed/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Repositories
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// A nil *queue.Client must stay a nil interface, or the nil check in the
	// use case never fires
	var events usecase.EventPublisher
	if queueClient != nil {
		events = queueClient
	}

	// Use cases
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, events, log)
	feedUseCase := usecase.NewFeedUseCase(postRepo, userRepo, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)

	// HTTP handlers
	postHandler := postHTTP.NewPostHandler(postUseCase, log)
	feedHandler := postHTTP.NewFeedHandler(feedUseCase, log)
	authHandler := postHTTP.NewAuthHandler(authUseCase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Identity endpoints, no credential required
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/jwt/login", authHandler.Login)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtService))
	{
		authorized.GET("/feed", feedHandler.GetFeed)
		authorized.GET("/users/me", authHandler.Me)

		// Mutating routes are rate limited; the feed deliberately is not.
		limited := authorized.Group("/")
		limited.Use(middleware.RateLimitMiddleware(redisClient, 30, time.Minute))
		{
			limited.POST("/upload", postHandler.Upload)
			limited.DELETE("/posts/:id", postHandler.Delete)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("snapfeed starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down snapfeed...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("snapfeed exited")
}
