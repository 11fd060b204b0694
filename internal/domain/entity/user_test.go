package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave/BeforeCreate не используют tx
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	plainPassword := "mySecretPassword123"
	user := &User{Name: "Test", Email: "test@example.com", Password: plainPassword}

	err := user.BeforeSave(mockTx)

	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)),
		"Хеш должен соответствовать исходному паролю")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Email: "test@example.com", Password: string(hashed)}

	require.NoError(t, user.BeforeSave(mockTx))
	assert.Equal(t, string(hashed), user.Password, "Уже хешированный пароль не должен изменяться")
}

func TestUser_BeforeSave_SkipsEmptyPassword(t *testing.T) {
	user := &User{Email: "test@example.com"}

	require.NoError(t, user.BeforeSave(mockTx))
	assert.Empty(t, user.Password)
}

func TestUser_CheckPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correctPassword123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Password: string(hashed)}

	assert.True(t, user.CheckPassword("correctPassword123"))
	assert.False(t, user.CheckPassword("wrongPassword456"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_BeforeCreate_AssignsID(t *testing.T) {
	user := &User{}
	require.NoError(t, user.BeforeCreate(mockTx))
	assert.NotEqual(t, uuid.Nil, user.ID)

	existing := uuid.New()
	user = &User{ID: existing}
	require.NoError(t, user.BeforeCreate(mockTx))
	assert.Equal(t, existing, user.ID, "Заданный ID не должен перезаписываться")
}
