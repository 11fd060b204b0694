package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// MockInterviewHandler обрабатывает запросы mock-интервью
type MockInterviewHandler struct {
	mockService *service.MockInterviewService
	log         *logger.Logger
}

// NewMockInterviewHandler создает новый обработчик mock-интервью
func NewMockInterviewHandler(mockService *service.MockInterviewService, log *logger.Logger) *MockInterviewHandler {
	return &MockInterviewHandler{mockService: mockService, log: log}
}

// Generate создает новое mock-интервью
func (h *MockInterviewHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.GenerateMockRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.mockService.Generate(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"session": dto.NewMockSessionResponse(session, true)})
}

// SubmitAnswer принимает ответ кандидата и возвращает оценку
func (h *MockInterviewHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.SubmitMockAnswerRequest
	if !bindJSON(c, &req) {
		return
	}
	sessionID, err := parseBodyUUID(req.SessionID, "sessionId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	outcome, err := h.mockService.SubmitAnswer(c.Request.Context(), userID, service.SubmitMockAnswerInput{
		SessionID:     sessionID,
		QuestionIndex: req.QuestionIndex,
		UserAnswer:    req.UserAnswer,
		AudioDuration: req.AudioDuration,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.NewMockAnswerResponse(outcome)
	respondSuccess(c, http.StatusOK, gin.H{
		"answerId":          resp.AnswerID,
		"evaluation":        resp.Evaluation,
		"nextQuestionIndex": resp.NextQuestionIndex,
		"isCompleted":       resp.IsCompleted,
	})
}

// GetResults возвращает итоги mock-интервью
func (h *MockInterviewHandler) GetResults(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	sessionID := c.MustGet(MockSessionIDKey).(uuid.UUID)

	results, err := h.mockService.Results(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.NewMockResultsResponse(results)
	respondSuccess(c, http.StatusOK, gin.H{
		"session":            resp.Session,
		"answers":            resp.Answers,
		"overallScore":       resp.OverallScore,
		"totalQuestions":     resp.TotalQuestions,
		"completedQuestions": resp.CompletedQuestions,
	})
}

// GetMyInterviews возвращает mock-интервью пользователя
func (h *MockInterviewHandler) GetMyInterviews(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	sessions, err := h.mockService.ListUserInterviews(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"sessions": dto.NewMockSessionListResponse(sessions),
		"count":    len(sessions),
	})
}
