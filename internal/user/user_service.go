package user

import (
	"context"

	"go-attend/internal/rbac"
	"go-attend/internal/shared/contextutil"
	usererrors "go-attend/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ChangeRole(ctx context.Context, id, role string) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error

	UpdateProfile(ctx context.Context, userID, username string) (UserResponse, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role := req.Role
	if role == "" {
		role = rbac.RoleUser
	}
	if !rbac.ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Username = req.Username
	u.Email = req.Email
	u.Role = req.Role
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.Password = string(hashed)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ChangeRole(ctx context.Context, id, role string) (UserResponse, error) {
	if !rbac.ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("role changed",
		zap.String("user_id", id),
		zap.String("role", role),
	)
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	// The client disables its own delete control; the server still refuses.
	if actorID == id {
		return usererrors.ErrSelfDelete
	}
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, userID, username string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Username = username
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)

	if err := s.repo.Update(ctx, u); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
