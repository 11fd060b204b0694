package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// AuthHandler обрабатывает регистрацию и вход
type AuthHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	auth := dto.NewAuthResponse(res)
	respondSuccess(c, http.StatusCreated, gin.H{"user": auth.User, "token": auth.Token})
}

// Login обрабатывает запрос на вход
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	auth := dto.NewAuthResponse(res)
	respondSuccess(c, http.StatusOK, gin.H{"user": auth.User, "token": auth.Token})
}
