package domain

import "errors"

// Caller-facing errors. The HTTP layer maps each one to a status code.
var (
	ErrValidation         = errors.New("required fields are missing")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvoiceNotFound    = errors.New("invoice not found")
)

// Storage-level lookups that the services translate before returning.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)
