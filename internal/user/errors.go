package user

import "errors"

var (
	// -- Validation & Input --
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password must be at least 8 characters long, contain a digit, a special character, and a capital letter")
	ErrInvalidPhone     = errors.New("phone number must be exactly 10 digits")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid email or password")

	// -- Resource State --
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")

	// -- Database & Operation Failures --
	ErrPersistence = errors.New("failed to persist user")
)
