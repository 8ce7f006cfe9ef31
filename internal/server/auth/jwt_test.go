package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bridgehq/bridge/internal/common"
)

func TestTokenRoundtrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("u1", secret, time.Hour)
	require.NoError(t, err)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("u1", []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("secret-b"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("u1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", []byte("test-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	require.NotEqual(t, "correcthorse", hash)

	require.True(t, CheckPassword(hash, "correcthorse"))
	require.False(t, CheckPassword(hash, "wronghorse"))
}
