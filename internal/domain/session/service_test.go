package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestService_IssueAndVerify(t *testing.T) {
	service := NewService("test-secret", 30*time.Minute, 7*24*time.Hour, slog.Default())

	token, err := service.Issue("admin", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestService_IssuePair(t *testing.T) {
	service := NewService("test-secret", 30*time.Minute, 7*24*time.Hour, slog.Default())

	pair, err := service.IssuePair("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1800, pair.ExpiresIn)
	assert.Equal(t, 7*24*3600, pair.RefreshExpiresIn)

	subject, err := service.Verify(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestService_Verify_Expired(t *testing.T) {
	service := NewService("test-secret", time.Minute, time.Hour, slog.Default())

	token, err := service.Issue("admin", -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Minute, time.Hour, slog.Default())
	verifier := NewService("secret-b", time.Minute, time.Hour, slog.Default())

	token, err := issuer.Issue("admin", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_Garbage(t *testing.T) {
	service := NewService("test-secret", time.Minute, time.Hour, slog.Default())

	_, err := service.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
