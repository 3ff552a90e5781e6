package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("user already exists")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrNameRequired         = errors.New("name is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrVerificationRequired = errors.New("email verification required")

	// Verification registry outcomes.
	ErrVerificationNotFound = errors.New("no pending verification for email")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeMismatch         = errors.New("verification code does not match")

	// ErrDelivery wraps a failed verification-email send. The registry
	// entry is not committed when this is returned.
	ErrDelivery = errors.New("failed to send verification email")
)
