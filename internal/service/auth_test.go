package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motomap-api/internal/core/auth"
	"motomap-api/internal/core/database"
)

func testAuthService(t *testing.T) (*AuthService, *auth.JWTer) {
	t.Helper()
	db := testDB(t)
	require.NoError(t, database.Seed(db))

	jwter := &auth.JWTer{
		Secret:   []byte("unit-test-secret"),
		Issuer:   "motomap-api",
		Audience: "motomap-clients",
		TTL:      time.Hour,
	}
	return NewAuthService(db, jwter, nil, 10, time.Minute), jwter
}

func TestLoginSeededAdmin(t *testing.T) {
	svc, jwter := testAuthService(t)

	token, err := svc.Login(context.Background(), "admin", "admin", "127.0.0.1")
	require.NoError(t, err)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), "admin", "nope", "127.0.0.1")
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), "nobody", "admin", "127.0.0.1")
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}
