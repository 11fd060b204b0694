package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// SessionHandler обрабатывает сессии подготовки и их вопросы
type SessionHandler struct {
	sessionService *service.SessionService
	log            *logger.Logger
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(sessionService *service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, log: log}
}

// CreateSession создает сессию вместе с вопросами
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"session": session})
}

// GetMySessions возвращает сессии пользователя
func (h *SessionHandler) GetMySessions(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// GetSession возвращает сессию с вопросами (закрепленные первыми)
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	sessionID := c.MustGet(SessionIDKey).(uuid.UUID)

	session, err := h.sessionService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"session": session})
}

// DeleteSession удаляет сессию и ее вопросы
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	sessionID := c.MustGet(SessionIDKey).(uuid.UUID)

	if err := h.sessionService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// AddQuestions добавляет вопросы в существующую сессию
func (h *SessionHandler) AddQuestions(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.AddQuestionsRequest
	if !bindJSON(c, &req) {
		return
	}
	sessionID, err := parseBodyUUID(req.SessionID, "sessionId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	questions, err := h.sessionService.AddQuestions(c.Request.Context(), userID, sessionID, req.Questions)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"questions": questions})
}

// TogglePin закрепляет или открепляет вопрос
func (h *SessionHandler) TogglePin(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	questionID := c.MustGet(QuestionIDKey).(uuid.UUID)

	question, err := h.sessionService.TogglePin(c.Request.Context(), userID, questionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"question": question})
}

// UpdateNote сохраняет заметку к вопросу
func (h *SessionHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	questionID := c.MustGet(QuestionIDKey).(uuid.UUID)

	var req dto.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.sessionService.UpdateNote(c.Request.Context(), userID, questionID, req.Note)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"question": question})
}
