package usecase

import (
	"context"
	"io"
	"mime/multipart"

	"snapfeed/internal/apperr"
	"snapfeed/internal/entity"
	"snapfeed/internal/repo/persistent"
	"snapfeed/pkg/logger"
	"snapfeed/pkg/queue"
	"snapfeed/pkg/s3"
	"snapfeed/pkg/staging"
)

// BlobStore is the upload contract of the external object storage. The
// concrete provider is injected so it can be swapped for a test double.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, suggestedName, contentType string) (*s3.Object, error)
	Delete(ctx context.Context, name string) error
}

// EventPublisher forwards post lifecycle events to the message broker.
type EventPublisher interface {
	PublishPostEvent(event queue.Event) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, caption string, file *multipart.FileHeader) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}

type postUseCase struct {
	postRepo  persistent.PostRepository
	blobStore BlobStore
	events    EventPublisher
	logger    *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	blobStore BlobStore,
	events EventPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		blobStore: blobStore,
		events:    events,
		logger:    logger,
	}
}

// CreatePost runs the upload pipeline: stage the inbound stream, forward it
// to blob storage, then record the metadata. The staged file is released on
// every exit path, and the post row is inserted only after the storage
// provider accepted the asset.
func (uc *postUseCase) CreatePost(ctx context.Context, userID, caption string, file *multipart.FileHeader) (*entity.Post, error) {
	if caption == "" {
		return nil, apperr.New(apperr.Validation, "caption must not be empty")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.Staging, "failed to open uploaded file", err)
	}
	defer src.Close()

	staged, err := staging.Stage(src, file.Filename)
	if err != nil {
		return nil, apperr.Wrap(apperr.Staging, "failed to stage upload", err)
	}
	defer staged.Release()

	contentType := file.Header.Get("Content-Type")
	fileType := entity.FileTypeFromContentType(contentType)

	stagedReader, err := staged.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.Staging, "failed to read staged upload", err)
	}
	defer stagedReader.Close()

	obj, err := uc.blobStore.Upload(ctx, stagedReader, staged.Name(), contentType)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "failed to upload media to storage", err)
	}

	post := &entity.Post{
		UserID:   userID,
		Caption:  caption,
		URL:      obj.URL,
		FileType: fileType,
		FileName: obj.Name,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		// The asset is stored but its row never existed; remove the orphan so
		// the bucket stays consistent with the metadata. Best effort only.
		if delErr := uc.blobStore.Delete(context.Background(), obj.Name); delErr != nil {
			uc.logger.Warn("Failed to remove orphaned object %s: %v", obj.Name, delErr)
		}
		return nil, err
	}

	uc.publishEvent(queue.EventPostCreated, post.ID, post.UserID)

	return post, nil
}

// DeletePost enforces owner-only deletion: a missing post reports NotFound, a
// foreign post reports Forbidden before any delete statement runs.
func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return apperr.New(apperr.Forbidden, "you are not allowed to delete this post")
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	uc.publishEvent(queue.EventPostDeleted, postID, userID)

	return nil
}

// publishEvent runs synchronously so no publish is still in flight when the
// broker connection closes at shutdown. Failures are logged, never returned.
func (uc *postUseCase) publishEvent(eventType, postID, userID string) {
	if uc.events == nil {
		return
	}
	event := queue.Event{Type: eventType, PostID: postID, UserID: userID}
	if err := uc.events.PublishPostEvent(event); err != nil {
		uc.logger.Error("Failed to publish %s event for post %s: %v", eventType, postID, err)
	}
}
