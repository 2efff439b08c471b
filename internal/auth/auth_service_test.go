package auth_test

import (
	"context"
	"testing"

	"go-attend/internal/auth"
	autherrors "go-attend/internal/auth/errors"
	"go-attend/internal/user"
	mock_user "go-attend/internal/user/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*mock_user.MockRepository, auth.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := auth.NewService(mockRepo)
	return mockRepo, svc
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	account := &user.User{
		ID:       uuid.New(),
		Username: "dina",
		Email:    "dina@example.com",
		Password: string(hashed),
		Role:     "user",
	}

	t.Run("success issues a signed token with claims", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "dina@example.com").
			Return(account, nil)

		resp, err := svc.Login(ctx, "dina@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), resp.User.ID)
		assert.Equal(t, "user", resp.User.Role)

		parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, account.ID.String(), claims["user_id"])
		assert.Equal(t, "dina", claims["username"])
		assert.Equal(t, "dina@example.com", claims["email"])
		assert.Equal(t, "user", claims["role"])
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, gorm.ErrRecordNotFound)
		_, unknownErr := svc.Login(ctx, "nobody@example.com", "secret123")

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "dina@example.com").
			Return(account, nil)
		_, wrongErr := svc.Login(ctx, "dina@example.com", "not-it")

		assert.ErrorIs(t, unknownErr, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success starts as a regular user", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "dina@example.com").
			Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, "user", u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
				return nil
			})

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user", resp.User.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "dina@example.com").
			Return(&user.User{ID: uuid.New(), Email: "dina@example.com"}, nil)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
