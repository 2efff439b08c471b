package auth

import "go-attend/internal/user"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse is the login/register success shape: the bearer token plus the
// profile the client caches in its session store.
type AuthResponse struct {
	Token string            `json:"token"`
	User  user.UserResponse `json:"user"`
}
