package main

import (
	"context"
	"fmt"

	"snapfeed/internal/entity"
	"snapfeed/internal/repo/persistent"
	"snapfeed/pkg/config"
	"snapfeed/pkg/database"
	"snapfeed/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users and posts for local development. Post URLs point at
// placeholder assets; run the real upload flow to exercise blob storage.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	ctx := context.Background()
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	users := []struct {
		email    string
		password string
	}{
		{"alice@example.com", "password123"},
		{"bob@example.com", "password123"},
	}

	var userIDs []string
	for _, u := range users {
		if existing, err := userRepo.GetByEmail(ctx, u.email); err == nil {
			log.Info("User %s already exists, skipping", u.email)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		user := &entity.User{Email: u.email, Password: string(hashed), IsActive: true}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Error("Failed to create user %s: %v", u.email, err)
			panic(err)
		}
		log.Info("Created user %s", u.email)
		userIDs = append(userIDs, user.ID)
	}

	posts := []struct {
		owner    int
		caption  string
		fileName string
		fileType entity.FileType
	}{
		{0, "first light", "sunrise.png", entity.FileTypeImage},
		{1, "weekend ride", "trail.mp4", entity.FileTypeVideo},
		{0, "lunch", "ramen.jpg", entity.FileTypeImage},
	}

	for _, p := range posts {
		post := &entity.Post{
			UserID:   userIDs[p.owner],
			Caption:  p.caption,
			URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/posts/%s", cfg.S3BucketName, cfg.AWSRegion, p.fileName),
			FileType: p.fileType,
			FileName: "posts/" + p.fileName,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Error("Failed to create post %q: %v", p.caption, err)
			panic(err)
		}
		log.Info("Created post %q for %s", p.caption, post.UserID)
	}

	log.Info("Database seeded successfully!")
}
