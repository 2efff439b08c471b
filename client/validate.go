package client

import (
	"errors"
	"strings"
)

const MinPasswordLength = 6

// Validation failures stop the request before it reaches the network.
var (
	ErrDateRequired     = errors.New("Please choose a date")
	ErrMessageRequired  = errors.New("Please provide a reason for your excuse")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

func ValidateExcuse(date, message string) error {
	if strings.TrimSpace(date) == "" {
		return ErrDateRequired
	}
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	return nil
}

func ValidatePassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// CanDeleteUser blocks self-deletion; the server enforces the same rule.
func CanDeleteUser(sessionUserID, targetID string) bool {
	return sessionUserID != "" && sessionUserID != targetID
}
