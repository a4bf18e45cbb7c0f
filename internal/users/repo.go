package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid user input")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repo persists accounts. Emails are stored normalized and are unique.
type Repo interface {
	// Create inserts user or returns ErrEmailExists.
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
