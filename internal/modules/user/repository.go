package user

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user lookup finds no account.
var ErrUserNotFound = errors.New("user not found")

// Repository defines data access for user accounts.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error

	// GetUserByID returns ErrUserNotFound if no account exists.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail returns ErrUserNotFound if no account exists.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ListByRole returns all accounts with the given role, newest first.
	ListByRole(ctx context.Context, role Role) ([]*User, error)

	UpdateUser(ctx context.Context, u *User) error

	DeleteUser(ctx context.Context, id string) error
}
