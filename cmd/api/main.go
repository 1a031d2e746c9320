package main

import (
	"snapfeed/internal/app"
	"snapfeed/pkg/cache"
	"snapfeed/pkg/config"
	"snapfeed/pkg/database"
	"snapfeed/pkg/logger"
	"snapfeed/pkg/queue"
	"snapfeed/pkg/s3"
)

// @title           snapfeed API
// @version         1.0
// @description     Media-backed social feed: upload image/video posts, read the feed, delete your own posts.

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// Lifecycle events are optional; run without a broker when unset.
	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ, post events disabled: %v", err)
			queueClient = nil
		}
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
