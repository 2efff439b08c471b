package usererrors

import (
	"net/http"

	"go-attend/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of user, admin, superadmin",
		http.StatusBadRequest,
	)
	ErrSelfDelete = apperror.New(
		apperror.CodeInvalidState,
		"You cannot delete your own account",
		http.StatusBadRequest,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
)
