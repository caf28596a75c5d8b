package jwthelper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	key := []byte("test-signing-key")
	user := domain.User{ID: uuid.New(), Role: domain.RoleAdministrator}

	token, err := GenerateToken(key, user, "curl/8", time.Hour)
	require.NoError(t, err)

	principal, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.True(t, principal.IsAdmin())
}

func TestRejectsBadTokens(t *testing.T) {
	key := []byte("test-signing-key")
	user := domain.User{ID: uuid.New(), Role: domain.RoleUser}

	expired, err := GenerateToken(key, user, "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := GenerateToken([]byte("another-key"), user, "", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(key, other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(key, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
