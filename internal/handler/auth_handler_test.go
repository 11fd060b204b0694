package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_RegisterLoginProfile(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ann",
		"email":    "Ann@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ann@example.com", user["email"], "Email приводится к нижнему регистру")
	assert.NotContains(t, user, "password", "Пароль не попадает в ответ")

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["error_type"])

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ann@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ann@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = s.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "Ann", profile["name"])
}

func TestAuthHandler_Validation(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_field", decode(t, w)["error_type"])

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Bob", "email": "bob@example.com", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "Слишком короткий пароль")

	w = s.do(http.MethodPost, "/api/auth/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decode(t, w)["error_type"])

	w = s.do(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_missing", decode(t, w)["error_type"])
}
