package services

import "errors"

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrUserNotFound       = errors.New("user not found")
	ErrArticleNotFound    = errors.New("article not found")
	ErrForbidden          = errors.New("article not found or not owned by user")
	ErrInvalidArticle     = errors.New("title and content are required")
)
