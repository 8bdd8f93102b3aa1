package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	user := &User{
		Email:    "student@test.com",
		Password: "plain-password",
	}

	err := user.BeforeSave(nil)
	require.NoError(t, err)

	assert.NotEqual(t, "plain-password", user.Password, "Пароль должен быть захеширован")
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"), "Хеш должен быть bcrypt")
	assert.True(t, user.CheckPassword("plain-password"), "Исходный пароль должен проходить проверку")
	assert.False(t, user.CheckPassword("wrong-password"), "Неверный пароль не должен проходить проверку")
}

func TestUser_BeforeSave_DoesNotRehash(t *testing.T) {
	user := &User{
		Email:    "student@test.com",
		Password: "secret123",
	}
	require.NoError(t, user.BeforeSave(nil))
	firstHash := user.Password

	// Повторное сохранение не должно менять уже захешированный пароль
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, firstHash, user.Password, "Bcrypt-хеш не должен хешироваться повторно")
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleStudent))
	assert.True(t, IsValidRole(RoleTeacher))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}
