package usecase

import (
	"context"

	"snapfeed/internal/apperr"
	"snapfeed/internal/entity"
	"snapfeed/internal/repo/persistent"
	"snapfeed/pkg/jwt"
	"snapfeed/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", apperr.New(apperr.Validation, "user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.Wrap(apperr.Persistence, "failed to process registration", err)
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Wrap(apperr.Unauthorized, "failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	if !user.IsActive {
		return nil, "", apperr.New(apperr.Unauthorized, "account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Wrap(apperr.Unauthorized, "failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
