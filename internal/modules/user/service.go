package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, name, email, password string, role Role) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateProfile changes name/email and optionally the password. Empty
	// fields keep the stored value.
	UpdateProfile(ctx context.Context, id string, name, email, password string) (*User, error)

	// ListCustomers returns all non-admin accounts.
	ListCustomers(ctx context.Context) ([]*User, error)

	// DeleteUser removes an account. Admin accounts cannot be deleted.
	DeleteUser(ctx context.Context, id string) error
}
