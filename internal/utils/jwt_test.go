package utils

import (
	"testing"
	"time"

	"wallet-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := models.User{ID: 42, Username: "satoshi", Role: "admin"}

	token, err := GenerateAccessToken(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "satoshi", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	user := models.User{ID: 1, Username: "u"}

	token, err := GenerateAccessToken(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateAccessToken(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(2, 10, 25)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, 11, meta.From)
	assert.Equal(t, 20, meta.To)
	assert.True(t, meta.HasMore)

	empty := CalculatePagination(1, 10, 0)
	assert.Equal(t, 0, empty.From)
	assert.Equal(t, 0, empty.To)
	assert.False(t, empty.HasMore)

	assert.Equal(t, 20, GetOffset(3, 10))
}
