package services

import (
	"testing"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginRefreshLogout(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: " Analyst@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", reg.User.Email)
	assert.Equal(t, RoleAnalyst, reg.User.Role)

	_, err = svc.Register(&dto.RegisterRequest{Email: "analyst@example.com", Password: "another one"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(&dto.LoginRequest{Email: "analyst@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.Login(&dto.LoginRequest{Email: "analyst@example.com", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh tokens rotate")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: refreshed.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterAdminEmail(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	resp, err := svc.Register(&dto.RegisterRequest{Email: "Boss@fakeguard.io", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.User.Role)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	_, err := svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakRegistration)
}

func TestIssueTestToken(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(newTestDB(t), cfg)

	resp, err := svc.IssueTestToken("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", resp.Subject)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAnalyst, claims["role"])
	assert.Equal(t, true, claims["test"])
	assert.NotEmpty(t, claims["sub"])
}

func TestIssueTestTokenDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AllowTestTokens = false
	svc := NewAuthService(newTestDB(t), cfg)

	_, err := svc.IssueTestToken("")
	assert.ErrorIs(t, err, ErrTestTokensDisabled)
}
