package jwthelper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-signing-key")

func TestAdminToken(t *testing.T) {
	userID := uuid.New()

	token, claims, err := GenerateToken(key, userID, "curl/8", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "curl/8", parsed.UserAgent)

	_, err = ParseToken([]byte("other-key"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := GenerateToken(key, userID, "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVoterToken(t *testing.T) {
	token, voterID, err := GenerateVoterToken(key, time.Hour)
	require.NoError(t, err)

	got, err := ParseVoterToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, voterID, got)

	_, err = ParseVoterToken(key, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	voter, _, err := GenerateVoterToken(key, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(key, voter)
	assert.ErrorIs(t, err, ErrInvalidToken)

	admin, _, err := GenerateToken(key, uuid.New(), "", time.Hour)
	require.NoError(t, err)
	_, err = ParseVoterToken(key, admin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
