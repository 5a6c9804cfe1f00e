package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, exp, err := GenerateSessionToken("user-123", "secret", 24)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken("user-123", "secret", 24)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other-secret")
	require.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, _, err := GenerateSessionToken("user-123", "secret", -1)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	require.Error(t, err)
}
