package ruleserrors

import (
	"net/http"

	"go-attend/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
)
