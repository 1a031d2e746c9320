package persistent

import (
	"context"
	"errors"
	"time"

	"snapfeed/internal/apperr"
	"snapfeed/internal/entity"
	"snapfeed/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListAllByRecency(ctx context.Context) ([]*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// seqRetries bounds how often Create recomputes seq after losing a race for
// the next slot.
const seqRetries = 3

// Create persists a post inside a transaction, assigning id and created_at
// when the caller left them zero. The stored row is copied back so the caller
// sees the server-assigned fields.
//
// Under READ COMMITTED two concurrent transactions can both read the same
// MAX(seq); the unique index on seq rejects the loser, which recomputes and
// retries.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if postModel.CreatedAt.IsZero() {
		postModel.CreatedAt = time.Now().UTC()
	}

	var err error
	for attempt := 0; attempt < seqRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Seq preserves insertion order so feed ties on created_at stay
			// stable. Unscoped: soft-deleted rows still hold their slot.
			var maxSeq int64
			if err := tx.Unscoped().Model(&model.PostModel{}).
				Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
				return err
			}
			postModel.Seq = maxSeq + 1

			return tx.Create(postModel).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to create post", err)
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch post", err)
	}
	return ToPostEntity(&postModel), nil
}

// ListAllByRecency returns the full post set, newest first, as an eager
// snapshot. The feed carries no pagination.
func (r *postRepository) ListAllByRecency(ctx context.Context) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, seq DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to list posts", err)
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// Delete removes a post transactionally. Deleting an absent row reports
// NotFound, so of two concurrent deletes only the first succeeds.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.PostModel{}, "id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.Persistence, "failed to delete post", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "post not found")
		}
		return nil
	})
}
