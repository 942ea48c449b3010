package auth

import (
	"context"

	"github.com/pagebound/bookstore-backend/internal/modules/user"
)

// Credentials is a signed-in account plus its bearer token.
type Credentials struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Register creates a customer account and signs it in.
	Register(ctx context.Context, name, email, password string) (*Credentials, error)

	Login(ctx context.Context, email, password string) (*Credentials, error)

	// CreateAdmin bootstraps the first admin account. Fails once an admin
	// exists.
	CreateAdmin(ctx context.Context, name, email, password string) (*Credentials, error)
}
