package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/pkg/auth"
)

// Ключи контекста Gin
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
	log        *logger.Logger
}

// NewAuthMiddleware создает middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, log: log}
}

func abortUnauthorized(c *gin.Context, message, errorType string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"message":    message,
		"error_type": errorType,
	})
}

// RequireAuth проверяет заголовок Authorization: Bearer {token}
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Not authorized, no token", "token_missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Authorization header format must be Bearer {token}", "token_format")
			return
		}

		userID, claims, err := m.jwtService.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if !errors.Is(err, auth.ErrTokenExpired) {
				m.log.Debug("[AuthMiddleware] token rejected", "path", c.FullPath(), "error", err)
			}
			abortUnauthorized(c, "Invalid or expired token", "token_invalid")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// UserIDFromContext возвращает ID аутентифицированного пользователя
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
