package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-attend/internal/auth/errors"
	"go-attend/internal/rbac"
	"go-attend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := generateToken(u, tokenTTL)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return AuthResponse{
		Token: token,
		User: user.UserResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		},
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     rbac.RoleUser,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	token, err := generateToken(u, tokenTTL)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("registration success", zap.String("user_id", u.ID.String()))
	return AuthResponse{
		Token: token,
		User: user.UserResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		},
	}, nil
}

func generateToken(u *user.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
