package usecase

import (
	"context"

	"snapfeed/internal/entity"
	"snapfeed/internal/repo/persistent"
	"snapfeed/pkg/logger"
)

// unknownEmail is emitted when a post's owner no longer resolves to a user.
const unknownEmail = "Unknown"

type FeedUseCase interface {
	GetFeed(ctx context.Context, callerID string) ([]*entity.FeedEntry, error)
}

type feedUseCase struct {
	postRepo persistent.PostRepository
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewFeedUseCase(postRepo persistent.PostRepository, userRepo persistent.UserRepository, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetFeed materializes the entire post set newest-first and annotates each
// entry for the caller. O(posts + users) per call with no pagination; the
// unbounded feed is an accepted ceiling of this design.
func (uc *feedUseCase) GetFeed(ctx context.Context, callerID string) ([]*entity.FeedEntry, error) {
	posts, err := uc.postRepo.ListAllByRecency(ctx)
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	emailByUserID := make(map[string]string, len(users))
	for _, u := range users {
		emailByUserID[u.ID] = u.Email
	}

	entries := make([]*entity.FeedEntry, 0, len(posts))
	for _, post := range posts {
		email, ok := emailByUserID[post.UserID]
		if !ok {
			email = unknownEmail
		}

		entries = append(entries, &entity.FeedEntry{
			ID:        post.ID,
			UserID:    post.UserID,
			Caption:   post.Caption,
			URL:       post.URL,
			FileType:  post.FileType,
			FileName:  post.FileName,
			CreatedAt: post.CreatedAt,
			IsOwner:   post.UserID == callerID,
			Email:     email,
		})
	}

	return entries, nil
}
