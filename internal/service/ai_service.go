package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/interviewprep-api/internal/ai"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// Ограничения генерации вопросов для подготовки
const (
	MinInterviewQuestions = 1
	MaxInterviewQuestions = 20

	explanationMaxTokens = 800
)

// InterviewQuestionsInput - параметры генерации вопросов с ответами
type InterviewQuestionsInput struct {
	Role              string
	Experience        string
	TopicsToFocus     string
	NumberOfQuestions int
}

// Explanation - объяснение концепции
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// AIService - standalone AI функции: вопросы с ответами и объяснение концепций
type AIService struct {
	generator ai.Generator
	log       *logger.Logger
}

// NewAIService создает AI сервис
func NewAIService(generator ai.Generator, log *logger.Logger) *AIService {
	return &AIService{generator: generator, log: log}
}

// GenerateInterviewQuestions генерирует пары вопрос-ответ
func (s *AIService) GenerateInterviewQuestions(ctx context.Context, in InterviewQuestionsInput) ([]QAPair, error) {
	role := strings.TrimSpace(in.Role)
	experience := strings.TrimSpace(in.Experience)
	topics := strings.TrimSpace(in.TopicsToFocus)
	if role == "" || experience == "" || topics == "" || in.NumberOfQuestions == 0 {
		return nil, apperrors.New(apperrors.ErrMissingField, "All fields are required")
	}
	if in.NumberOfQuestions < MinInterviewQuestions || in.NumberOfQuestions > MaxInterviewQuestions {
		return nil, apperrors.Newf(apperrors.ErrCountOutOfRange,
			"Number of questions must be between %d and %d", MinInterviewQuestions, MaxInterviewQuestions)
	}

	raw, err := s.generator.Generate(ctx, ai.InterviewQuestionsPrompt(role, experience, topics, in.NumberOfQuestions))
	if err != nil {
		return nil, fmt.Errorf("generate interview questions: %w", err)
	}

	var pairs []QAPair
	if err := ai.DecodeJSON(raw, &pairs); err != nil {
		s.log.Warn("[AIService] interview questions rejected", "error", err)
		return nil, apperrors.New(apperrors.ErrGenerationFailed, "AI did not return an array of questions.")
	}

	out := make([]QAPair, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p.Question) != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.New(apperrors.ErrGenerationFailed, "AI did not return an array of questions.")
	}
	return out, nil
}

// ExplainConcept объясняет вопрос. Если ответ модели не является ожидаемым JSON,
// возвращается текст ответа с вопросом в качестве заголовка.
func (s *AIService) ExplainConcept(ctx context.Context, question string) (*Explanation, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.New(apperrors.ErrMissingField, "Question is required")
	}

	raw, err := s.generator.Generate(ctx, ai.ConceptExplanationPrompt(question), ai.WithMaxOutputTokens(explanationMaxTokens))
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceUnavailable) {
			return nil, apperrors.New(apperrors.ErrServiceUnavailable,
				"The AI model is temporarily unavailable. Please try again later.")
		}
		return nil, fmt.Errorf("explain concept: %w", err)
	}

	var exp Explanation
	if err := ai.DecodeJSON(raw, &exp); err != nil || exp.Title == "" || exp.Explanation == "" {
		s.log.Debug("[AIService] explanation fallback to plain text", "error", err)
		return &Explanation{Title: question, Explanation: ai.CleanResponse(raw)}, nil
	}
	return &exp, nil
}

// decodeObject разбирает JSON-объект, не допуская массивов и скаляров
func decodeObject(raw string, dest interface{}) error {
	var payload json.RawMessage
	if err := ai.DecodeJSON(raw, &payload); err != nil {
		return err
	}
	if !strings.HasPrefix(strings.TrimSpace(string(payload)), "{") {
		return fmt.Errorf("%w: expected JSON object", apperrors.ErrMalformedResponse)
	}
	return json.Unmarshal(payload, dest)
}
