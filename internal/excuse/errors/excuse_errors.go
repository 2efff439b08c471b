package excuseerrors

import (
	"net/http"

	"go-attend/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidExcuseID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid excuse id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrMessageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please provide a reason for your excuse",
		http.StatusBadRequest,
	)
	ErrExcuseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Excuse not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"This excuse has already been decided",
		http.StatusConflict,
	)
	ErrDuplicatePending = apperror.New(
		apperror.CodeConflict,
		"An excuse for this date is already pending",
		http.StatusConflict,
	)
)
