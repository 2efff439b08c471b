package attendanceerrors

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
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive number",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAlreadyArrived = apperror.New(
		apperror.CodeConflict,
		"Arrival already marked for this date",
		http.StatusConflict,
	)
	ErrNoOpenRecord = apperror.New(
		apperror.CodeInvalidState,
		"No open arrival found for this date",
		http.StatusBadRequest,
	)
	ErrAlreadyExited = apperror.New(
		apperror.CodeConflict,
		"Exit already marked for this date",
		http.StatusConflict,
	)
	ErrDateExcused = apperror.New(
		apperror.CodeConflict,
		"This date is covered by an approved excuse",
		http.StatusConflict,
	)
)
