package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alumnihub/internal/apperr"
	"alumnihub/internal/authz"
	"alumnihub/internal/models"
)

func TestTokenServiceRequiresSecret(t *testing.T) {
	require.Panics(t, func() {
		NewTokenService("", time.Minute, time.Minute)
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", 15*time.Minute, 10*time.Minute)
	user := &models.User{ID: 42, Email: "alice@x.test", Role: authz.RoleAdmin}

	signed, err := tokens.IssueSession(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, "alice@x.test", claims.Email)
	require.Equal(t, authz.RoleAdmin, claims.Role)
	require.Equal(t, ScopeSession, claims.Scope)
	require.NotEmpty(t, claims.ID) // jti
}

func TestResetTokenCarriesIdentityOnly(t *testing.T) {
	tokens := NewTokenService("test-secret", 15*time.Minute, 10*time.Minute)

	signed, err := tokens.IssueReset(42)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, ScopePasswordReset, claims.Scope)
	require.Empty(t, claims.Email)
	require.Empty(t, claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute, -time.Minute)
	signed, err := tokens.IssueReset(7)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Equal(t, apperr.KindExpired, apperr.KindOf(err))
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	tokens := NewTokenService("test-secret", 15*time.Minute, 10*time.Minute)

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Verify("not-a-jwt")
		require.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", 15*time.Minute, 10*time.Minute)
		signed, err := other.IssueReset(7)
		require.NoError(t, err)

		_, err = tokens.Verify(signed)
		require.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})

	t.Run("tampered payload", func(t *testing.T) {
		signed, err := tokens.IssueReset(7)
		require.NoError(t, err)
		tampered := signed[:len(signed)-4] + "AAAA"

		_, err = tokens.Verify(tampered)
		require.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})
}
