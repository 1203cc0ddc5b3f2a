package utils

import (
	"regexp"
	"testing"
	"time"

	"go-storefront/errs"
	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	user := models.User{ID: primitive.NewObjectID(), Email: "a@example.com", Name: "Ann", Role: models.RoleAdmin}

	token, err := tm.GenerateAccessToken(user, "session-1")
	require.NoError(t, err)

	claims, err := tm.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.ID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	refresh, err := tm.GenerateRefreshToken("session-1")
	require.NoError(t, err)

	_, err = tm.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	claims, err := tm.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	access, err := tm.GenerateAccessToken(models.User{ID: primitive.NewObjectID(), Role: models.RoleCustomer}, "session-1")
	require.NoError(t, err)

	_, err = tm.ParseRefreshToken(access)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	claims, err := tm.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestParseRejectsForeignAndExpiredTokens(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute, time.Hour)
	other := NewTokenManager("other", time.Minute, time.Hour)
	user := models.User{ID: primitive.NewObjectID()}

	expired, err := tm.GenerateAccessToken(user, "s")
	require.NoError(t, err)
	_, err = tm.ParseAccessToken(expired)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)

	foreign, err := other.GenerateAccessToken(user, "s")
	require.NoError(t, err)
	_, err = tm.ParseAccessToken(foreign)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	_, err = tm.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestRandomValues(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}$`), code)

	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)
}
