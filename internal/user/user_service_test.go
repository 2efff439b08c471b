package user_test

import (
	"context"
	"testing"

	"go-attend/internal/user"
	usererrors "go-attend/internal/user/errors"
	mock_user "go-attend/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*mock_user.MockRepository, user.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := user.NewService(mockRepo)
	return mockRepo, svc
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.NotEqual(t, "secret123", u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
				assert.Equal(t, "user", u.Role)
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "dina", resp.Username)
		assert.Equal(t, "user", resp.Role)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Create(ctx, user.CreateUserRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Password: "secret123",
			Role:     "owner",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("replaces fields and rehashes a new password", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Username: "old", Email: "old@example.com", Role: "user"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, "dina", u.Username)
				assert.Equal(t, "admin", u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("freshpass")))
				return nil
			})

		resp, err := svc.Update(ctx, id.String(), user.UpdateUserRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Role:     "admin",
			Password: "freshpass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("keeps the stored password when none is given", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Password: "stored-hash", Role: "user"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, "stored-hash", u.Password)
				return nil
			})

		_, err := svc.Update(ctx, id.String(), user.UpdateUserRequest{
			Username: "dina",
			Email:    "dina@example.com",
			Role:     "user",
		})

		assert.NoError(t, err)
	})
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Username: "dina", Email: "dina@example.com", Role: "user"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, "admin", u.Role)
				return nil
			})

		resp, err := svc.ChangeRole(ctx, id.String(), "admin")

		assert.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.ChangeRole(ctx, id.String(), "root")

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), targetID).
			Return(&user.User{ID: uuid.MustParse(targetID)}, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), targetID).
			Return(nil)

		assert.NoError(t, svc.Delete(ctx, actorID, targetID))
	})

	t.Run("self delete refused before any repository call", func(t *testing.T) {
		_, svc := setup(t)

		err := svc.Delete(ctx, actorID, actorID)

		assert.ErrorIs(t, err, usererrors.ErrSelfDelete)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), targetID).
			Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(ctx, actorID, targetID)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Password: string(hashed)}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass")))
				return nil
			})

		assert.NoError(t, svc.ChangePassword(ctx, id.String(), "oldpass", "newpass"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo, svc := setup(t)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Password: string(hashed)}, nil)

		err := svc.ChangePassword(ctx, id.String(), "guess", "newpass")

		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})
}
