package usecase

import (
	"context"
	"testing"

	"snapfeed/internal/apperr"
	"snapfeed/internal/entity"
	"snapfeed/pkg/jwt"
	"snapfeed/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase(userRepo *MockUserRepository) AuthUseCase {
	return NewAuthUseCase(userRepo, jwt.NewService("test-secret-key"), logger.New())
}

func TestRegister_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(nil, apperr.New(apperr.NotFound, "user not found"))
	mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = "user-1"
		}).
		Return(nil)

	user, token, err := uc.Register(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, token)

	// The stored password must be a bcrypt hash, never the plaintext
	created := mockUsers.Calls[1].Arguments.Get(1).(*entity.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&entity.User{ID: "user-1", Email: "alice@example.com"}, nil)

	_, _, err := uc.Register(context.Background(), "alice@example.com", "password123")

	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RacingDuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	// A concurrent registration can slip past the email pre-check; the unique
	// index rejection must still surface as a caller error
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(nil, apperr.New(apperr.NotFound, "user not found"))
	mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Return(apperr.New(apperr.Validation, "user with this email already exists"))

	_, _, err := uc.Register(context.Background(), "alice@example.com", "password123")

	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestLogin_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&entity.User{ID: "user-1", Email: "alice@example.com", Password: string(hashed), IsActive: true}, nil)

	user, token, err := uc.Login(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)

	claims, err := jwt.NewService("test-secret-key").ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&entity.User{ID: "user-1", Email: "alice@example.com", Password: string(hashed), IsActive: true}, nil)

	_, _, err = uc.Login(context.Background(), "alice@example.com", "wrong")

	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, apperr.New(apperr.NotFound, "user not found"))

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "password123")

	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&entity.User{ID: "user-1", Email: "alice@example.com", Password: string(hashed), IsActive: false}, nil)

	_, _, err = uc.Login(context.Background(), "alice@example.com", "password123")

	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestGetUser_StripsPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	uc := newAuthUseCase(mockUsers)

	mockUsers.On("GetByID", mock.Anything, "user-1").
		Return(&entity.User{ID: "user-1", Email: "alice@example.com", Password: "hashed", IsActive: true}, nil)

	user, err := uc.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Empty(t, user.Password)
}
