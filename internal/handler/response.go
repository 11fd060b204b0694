package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/middleware"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// errorMapping сопоставляет тип ошибки с HTTP ответом
type errorMapping struct {
	kind      error
	status    int
	errorType string
	message   string
}

// Порядок важен: проверяется первое совпадение
var errorMappings = []errorMapping{
	{apperrors.ErrMissingField, http.StatusBadRequest, "missing_field", "Missing required fields"},
	{apperrors.ErrCountOutOfRange, http.StatusBadRequest, "count_out_of_range", "Number of questions is out of range"},
	{apperrors.ErrLengthMismatch, http.StatusBadRequest, "length_mismatch", "Answers count does not match questions count"},
	{apperrors.ErrValidation, http.StatusBadRequest, "validation", "Invalid request"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Not authorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "Access denied"},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "Resource not found"},
	{apperrors.ErrAlreadySubmitted, http.StatusConflict, "already_submitted", "Quiz already submitted"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "Resource state conflict"},
	{apperrors.ErrRateLimited, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later."},
	{apperrors.ErrGenerationFailed, http.StatusInternalServerError, "generation_failed", "Failed to generate questions. Please try again."},
	{apperrors.ErrInvalidQuestionFormat, http.StatusInternalServerError, "invalid_question_format", "AI returned a question in an invalid format. Please try again."},
	{apperrors.ErrInconsistentWrite, http.StatusInternalServerError, "inconsistent_write", "Quiz submission could not be confirmed. Please contact support."},
	{apperrors.ErrMalformedResponse, http.StatusBadGateway, "malformed_response", "AI returned an invalid response. Please try again."},
	{apperrors.ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable", "The AI model is temporarily unavailable. Please try again later."},
}

// respondError отправляет ошибку в едином формате и логирует серверные ошибки
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status, errorType, message := http.StatusInternalServerError, "internal_error", "Internal server error"
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			status, errorType, message = m.status, m.errorType, m.message
			if public, ok := apperrors.PublicMessage(err); ok {
				message = public
			}
			break
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error("[Handler] request failed",
			"route", c.FullPath(),
			"status", status,
			"error_type", errorType,
			"error", err,
		)
	}

	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"error_type": errorType,
	})
}

// respondSuccess отправляет успешный ответ, добавляя "success": true
func respondSuccess(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// bindJSON разбирает тело запроса; при ошибке отвечает 400 и возвращает false
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "Invalid request body",
			"error_type": "validation",
		})
		return false
	}
	return true
}

// currentUserID возвращает ID аутентифицированного пользователя.
// Маршрут без RequireAuth считается ошибкой конфигурации.
func currentUserID(c *gin.Context, log *logger.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, log, apperrors.New(apperrors.ErrUnauthorized, "Not authorized"))
		return uuid.Nil, false
	}
	return userID, true
}

// parseBodyUUID разбирает идентификатор из тела запроса.
// Пустая строка дает uuid.Nil, чтобы сервис вернул MissingField.
func parseBodyUUID(raw, field string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Newf(apperrors.ErrValidation, "Invalid %s", field)
	}
	return id, nil
}
