package services

import "errors"

// Sentinel errors the handlers translate to HTTP statuses.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrInvalidToken       = errors.New("invalid or revoked token")
	ErrEmailExists        = errors.New("email already in use by another account")
	ErrSelfDeletion       = errors.New("admins cannot delete their own account")
	ErrValidation         = errors.New("validation failed")
)
