package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"netsketch/app/apperr"
	"netsketch/app/dto"
	"netsketch/app/models"
)

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateUser("", "pw", "user", "")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.users.CreateUser("alice", "", "user", "")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.users.CreateUser("alice", "pw", "superuser", "")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateUserDefaultsToUserRole(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.users.CreateUser("alice", "pw", "", "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "user", u.Role)
	require.Equal(t, "a@example.com", u.Email)
	require.NotEmpty(t, u.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateUser("alice", "pw", "user", "")
	require.NoError(t, err)
	_, err = env.users.CreateUser("alice", "other", "user", "")
	require.ErrorIs(t, err, apperr.ErrDuplicateUsername)
}

func TestDeleteUserSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "root", "admin")

	err := env.users.DeleteUser(admin.ID, admin.ID)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, env.gdb.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "root", "admin")
	victim := env.user(t, "bob", "user")

	require.NoError(t, env.users.DeleteUser(admin.ID, victim.ID))
	require.ErrorIs(t, env.users.DeleteUser(admin.ID, victim.ID), apperr.ErrNotFound)
}

func TestValidateCredentials(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.users.CreateUser("alice", "secret", "user", "")
	require.NoError(t, err)
	require.Nil(t, u.LastLogin)

	got, err := env.users.ValidateCredentials("alice", "secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.LastLogin)

	_, err = env.users.ValidateCredentials("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.ValidateCredentials("nobody", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.users.CreateUser("alice", "old", "user", "")
	require.NoError(t, err)

	require.ErrorIs(t, env.users.ResetPassword(u.ID, ""), apperr.ErrValidation)
	require.NoError(t, env.users.ResetPassword(u.ID, "new"))

	_, err = env.users.ValidateCredentials("alice", "old")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.users.ValidateCredentials("alice", "new")
	require.NoError(t, err)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.users.CreateUser("alice", "pw", "user", "")
	require.NoError(t, err)
	_, err = env.users.CreateUser("bob", "pw", "user", "")
	require.NoError(t, err)

	role := "readonly"
	got, err := env.users.UpdateUser(u.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "readonly", got.Role)

	bad := "wizard"
	_, err = env.users.UpdateUser(u.ID, dto.UpdateUserRequest{Role: &bad})
	require.ErrorIs(t, err, apperr.ErrValidation)

	taken := "bob"
	_, err = env.users.UpdateUser(u.ID, dto.UpdateUserRequest{Username: &taken})
	require.ErrorIs(t, err, apperr.ErrDuplicateUsername)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.users.EnsureAdmin("admin", "admin123"))
	require.NoError(t, env.users.EnsureAdmin("admin", "different"))

	var count int64
	require.NoError(t, env.gdb.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	u, err := env.users.ValidateCredentials("admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)
}
