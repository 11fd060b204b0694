package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/handler/dto"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// AIHandler обрабатывает отдельные AI запросы
type AIHandler struct {
	aiService *service.AIService
	log       *logger.Logger
}

// NewAIHandler создает новый AI обработчик
func NewAIHandler(aiService *service.AIService, log *logger.Logger) *AIHandler {
	return &AIHandler{aiService: aiService, log: log}
}

// GenerateQuestions генерирует вопросы для интервью вместе с ответами
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if !bindJSON(c, &req) {
		return
	}

	questions, err := h.aiService.GenerateInterviewQuestions(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"questions": questions})
}

// GenerateExplanation объясняет концепцию из вопроса
func (h *AIHandler) GenerateExplanation(c *gin.Context) {
	var req dto.ExplanationRequest
	if !bindJSON(c, &req) {
		return
	}

	explanation, err := h.aiService.ExplainConcept(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"data": explanation})
}
