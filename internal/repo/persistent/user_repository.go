package persistent

import (
	"context"
	"errors"

	"snapfeed/internal/apperr"
	"snapfeed/internal/entity"
	"snapfeed/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(userModel).Error
	})
	if err != nil {
		// A registration that loses the race to the unique email index is a
		// caller error, not a server fault.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.Validation, "user with this email already exists")
		}
		return apperr.Wrap(apperr.Persistence, "failed to create user", err)
	}

	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch user", err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch user", err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).Find(&userModels).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to list users", err)
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}
