package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/domain"
)

func TestEnsureAdminAndLogin(t *testing.T) {
	mem := newMemory()
	svc := NewAuthService(memUsers{mem})
	conf := &config.AdminConfig{Username: "panitia", Email: "panitia@volley.test", Password: "rahasia123"}

	require.NoError(t, svc.EnsureAdmin(context.Background(), conf))
	require.NoError(t, svc.EnsureAdmin(context.Background(), conf))
	assert.Len(t, mem.users, 1)

	for _, login := range []string{"panitia", "panitia@volley.test"} {
		user, err := svc.Login(context.Background(), login, "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdministrator, user.Role)
		assert.NotEqual(t, "rahasia123", user.Password)
	}

	_, err := svc.Login(context.Background(), "panitia", "wrong-pass1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody", "rahasia123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureAdminSkippedWithoutConfig(t *testing.T) {
	mem := newMemory()
	svc := NewAuthService(memUsers{mem})

	require.NoError(t, svc.EnsureAdmin(context.Background(), &config.AdminConfig{}))
	assert.Empty(t, mem.users)
}

func TestCreateUserPasswordPolicy(t *testing.T) {
	mem := newMemory()
	svc := NewUserService(memUsers{mem})

	for _, weak := range []string{"short1", "lettersonly", "12345678"} {
		_, err := svc.CreateUser(context.Background(), domain.User{Username: "u", Email: "u@test", Password: weak})
		assert.ErrorIs(t, err, ErrWeakPassword, weak)
	}

	user, err := svc.CreateUser(context.Background(), domain.User{Username: "u", Email: "u@test", Password: "abcdefg1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	found, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "u", found.Username)
}
