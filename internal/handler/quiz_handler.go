package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// Ключи контекста для идентификаторов из URL
const (
	QuizIDKey        = "quizID"
	ResultIDKey      = "resultID"
	SessionIDKey     = "sessionID"
	QuestionIDKey    = "questionID"
	MockSessionIDKey = "mockSessionID"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
	hideAnswers   bool
	log           *logger.Logger
}

// NewQuizHandler создает новый обработчик викторин.
// hideAnswers скрывает ключ ответов до отправки викторины.
func NewQuizHandler(
	quizService *service.QuizService,
	resultService *service.ResultService,
	hideAnswers bool,
	log *logger.Logger,
) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
		hideAnswers:   hideAnswers,
		log:           log,
	}
}

// GenerateQuiz генерирует новую викторину через AI
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.GenerateQuizRequest
	if !bindJSON(c, &req) {
		return
	}

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"quiz": dto.NewQuizResponse(quiz, h.hideAnswers)})
}

// GetMyQuizzes возвращает викторины пользователя без вопросов
func (h *QuizHandler) GetMyQuizzes(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListUserQuizzes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"quizzes": dto.NewQuizListResponse(quizzes),
		"count":   len(quizzes),
	})
}

// GetQuiz возвращает викторину по ID
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	quizID := c.MustGet(QuizIDKey).(uuid.UUID)

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), userID, quizID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"quiz": dto.NewQuizResponse(quiz, h.hideAnswers)})
}

// DeleteQuiz удаляет викторину вместе с ее результатами
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	quizID := c.MustGet(QuizIDKey).(uuid.UUID)

	if err := h.quizService.DeleteQuiz(c.Request.Context(), userID, quizID); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": "Quiz and associated results deleted successfully"})
}

// SubmitQuiz принимает ответы и возвращает результат
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	quizID, err := parseBodyUUID(req.QuizID, "quizId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sub, err := h.resultService.SubmitQuiz(c.Request.Context(), userID, service.SubmitQuizInput{
		QuizID:    quizID,
		Answers:   req.Answers,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.NewSubmissionResponse(sub)
	respondSuccess(c, http.StatusOK, gin.H{
		"result":  resp.Result,
		"quiz":    resp.Quiz,
		"summary": resp.Summary,
	})
}

// GetResults возвращает все результаты пользователя с аналитикой
func (h *QuizHandler) GetResults(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	overview, err := h.resultService.ListResults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"results":   dto.NewResultListResponse(overview.Results),
		"analytics": dto.NewAnalyticsResponse(overview.Analytics),
	})
}

// GetResult возвращает один результат вместе с викториной
func (h *QuizHandler) GetResult(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}
	resultID := c.MustGet(ResultIDKey).(uuid.UUID)

	result, err := h.resultService.GetResult(c.Request.Context(), userID, resultID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"result": dto.NewResultResponse(result)})
}

// GetStats возвращает сводную статистику пользователя
func (h *QuizHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	stats, err := h.resultService.GetStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"stats": stats})
}
