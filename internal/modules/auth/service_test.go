package auth

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore-backend/internal/httpauth"
	"github.com/pagebound/bookstore-backend/internal/modules/user"
)

var testKey = []byte("test-secret")

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *user.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, user.ErrUserNotFound
	}
	u, ok := r.users[uid]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]*user.User, error) {
	var users []*user.User
	for _, u := range r.users {
		if u.Role == role {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return user.ErrUserNotFound
	}
	delete(r.users, uid)
	return nil
}

func newAuthService() Service {
	repo := newFakeUserRepo()
	return NewService(user.NewService(repo), repo, testKey)
}

func parseClaims(t *testing.T, token string) *httpauth.Claims {
	t.Helper()
	claims := &httpauth.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return testKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	creds, err := svc.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, creds.User)

	claims := parseClaims(t, creds.Token)
	assert.Equal(t, creds.User.ID.String(), claims.Subject)
	assert.Equal(t, "user", claims.Role)

	t.Run("login with the right password", func(t *testing.T) {
		got, err := svc.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, creds.User.ID, got.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "john@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	creds, err := svc.CreateAdmin(ctx, "Admin User", "admin@bookstore.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", parseClaims(t, creds.Token).Role)

	_, err = svc.CreateAdmin(ctx, "Second Admin", "admin2@bookstore.com", "admin123")
	assert.EqualError(t, err, "admin account already exists")
}
