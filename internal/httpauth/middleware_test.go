package httpauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func signToken(t *testing.T, role string, expiresAt int64) string {
	t.Helper()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: expiresAt},
		Role:           role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	mw := NewMiddleware(testKey)
	var gotUserID string
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		gotAdmin = IsAdmin(r.Context())
	})

	call := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		rec := call("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := call("Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := call("Bearer " + signToken(t, "user", time.Now().Add(-time.Hour).Unix()))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		claims := &Claims{StandardClaims: jwt.StandardClaims{Subject: "user-1",
			ExpiresAt: time.Now().Add(time.Hour).Unix()}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
		require.NoError(t, err)
		rec := call("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token populates the context", func(t *testing.T) {
		rec := call("Bearer " + signToken(t, "admin", time.Now().Add(time.Hour).Unix()))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.True(t, gotAdmin)
	})
}

func TestRequireAdmin(t *testing.T) {
	mw := NewMiddleware(testKey)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	protected := mw.Authenticate(mw.RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user", time.Now().Add(time.Hour).Unix()))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Now().Add(time.Hour).Unix()))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
