package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с текущим пользователем
type UserHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(authService *service.AuthService, log *logger.Logger) *UserHandler {
	return &UserHandler{authService: authService, log: log}
}

// GetProfile возвращает профиль аутентифицированного пользователя
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}
