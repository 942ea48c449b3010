package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
	"github.com/pagebound/bookstore-backend/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// tokenTTL matches the 30-day expiry the web client expects.
const tokenTTL = 30 * 24 * time.Hour

type service struct {
	users    user.Service
	userRepo user.Repository
	jwtKey   []byte
}

// NewService creates a new auth service signing tokens with the given key.
func NewService(users user.Service, userRepo user.Repository, jwtKey []byte) Service {
	return &service{users: users, userRepo: userRepo, jwtKey: jwtKey}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	u, err := s.users.RegisterUser(ctx, name, email, password, user.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *service) CreateAdmin(ctx context.Context, name, email, password string) (*Credentials, error) {
	admins, err := s.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(admins) > 0 {
		return nil, errors.New("admin account already exists")
	}

	u, err := s.users.RegisterUser(ctx, name, email, password, user.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) issue(u *user.User) (*Credentials, error) {
	claims := &httpauth.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
		Role: string(u.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, err
	}
	return &Credentials{User: u, Token: tokenString}, nil
}
