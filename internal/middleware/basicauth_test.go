package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-calendar/internal/middleware"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := middleware.HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"), hash)

	ok, err := middleware.VerifyPassword("s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = middleware.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := middleware.HashPassword("same")
	require.NoError(t, err)
	b, err := middleware.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	for _, bad := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	} {
		_, err := middleware.VerifyPassword("x", bad)
		assert.ErrorIs(t, err, middleware.ErrInvalidHash, bad)
		assert.ErrorIs(t, middleware.CheckHash(bad), middleware.ErrInvalidHash, bad)
	}
}

func TestBasicAuth_DegenerateHashRejects(t *testing.T) {
	h := middleware.NewBasicAuth("admin", "$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$aGFzaA", "Travel Calendar", quietLogger)(trivialHandler)

	req := httptest.NewRequest(http.MethodPost, "/travels", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuth(t *testing.T) {
	hash, err := middleware.HashPassword("s3cret")
	require.NoError(t, err)
	h := middleware.NewBasicAuth("admin", hash, "Travel Calendar", quietLogger)(trivialHandler)

	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		wantStatus int
	}{
		{name: "valid", user: "admin", pass: "s3cret", setAuth: true, wantStatus: http.StatusOK},
		{name: "wrong password", user: "admin", pass: "nope", setAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "wrong user", user: "root", pass: "s3cret", setAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "no credentials", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/travels", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `realm="Travel Calendar"`)
			}
		})
	}
}

func TestBasicAuth_DisabledWithoutCredentials(t *testing.T) {
	h := middleware.NewBasicAuth("", "", "x", quietLogger)(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/travels/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
