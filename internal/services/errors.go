package services

import "errors"

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrNoPosts            = errors.New("no posts found for this user")
)
