package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField reports a missing field by its wire name.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		field+" is required",
		http.StatusBadRequest,
	)
}

// InvalidField reports a field that failed any other validation rule.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		field+" is invalid",
		http.StatusBadRequest,
	)
}

// HTTPError is the status/message pair a handler writes to the wire.
type HTTPError struct {
	Status  int
	Message string
}

// ToHTTP maps any service error onto the wire contract. Unknown errors
// collapse into a generic 500 so internals never leak to the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{Status: appErr.HTTPStatus, Message: appErr.Message}
	}
	return HTTPError{Status: http.StatusInternalServerError, Message: ErrInternal.Message}
}
