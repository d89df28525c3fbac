package domain

import (
	"context"
	"errors"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User is a person identified by email who can check in to events.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, email string) *User {
	return &User{Name: name, Email: email}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserService defines the business logic for resolving users by email.
type UserService interface {
	// GetOrCreateUser returns the user with the given email, creating one
	// if none exists. The derived display name is the email local part with
	// all non-alphanumeric characters stripped, or "User" if nothing remains.
	GetOrCreateUser(ctx context.Context, email string) (*User, error)
}
