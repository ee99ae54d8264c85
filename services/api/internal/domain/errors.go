package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrSoldOut              = errors.New("event sold out")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrAlreadyLiked         = errors.New("already liked")
	ErrEmailTaken           = errors.New("email already taken")
	ErrUserNameRequired     = errors.New("name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidID            = errors.New("invalid id")
)
