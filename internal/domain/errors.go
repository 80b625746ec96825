package domain

import "errors"

// Account errors
var (
	ErrValidation         = errors.New("username and password are required")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// List errors
var (
	ErrUnknownList = errors.New("unknown list")
)
