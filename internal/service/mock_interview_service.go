package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yourusername/interviewprep-api/internal/ai"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// Ограничения mock-интервью
const (
	MinMockQuestions     = 3
	MaxMockQuestions     = 10
	DefaultMockQuestions = 5

	maxEvaluationScore = 10
)

// fallbackEvaluation используется, когда оценку модели не удалось разобрать
func fallbackEvaluation() entity.Evaluation {
	return entity.Evaluation{
		Score:           5,
		Feedback:        "Unable to evaluate this response properly. Please try again with a more detailed answer.",
		Strengths:       []string{"Answer provided"},
		Improvements:    []string{"Could not evaluate content properly"},
		SuggestedAnswer: "Evaluation unavailable due to technical issues.",
	}
}

// GenerateMockInput - параметры нового mock-интервью
type GenerateMockInput struct {
	Role              string
	Experience        string
	Topics            []string
	NumberOfQuestions *int
}

// SubmitMockAnswerInput - ответ кандидата на вопрос
type SubmitMockAnswerInput struct {
	SessionID     uuid.UUID
	QuestionIndex *int
	UserAnswer    string
	AudioDuration int
}

// MockAnswerOutcome - оценка ответа и прогресс сессии
type MockAnswerOutcome struct {
	Answer            *entity.MockInterviewAnswer
	Evaluation        entity.Evaluation
	NextQuestionIndex int
	IsCompleted       bool
}

// MockInterviewResults - итог mock-интервью
type MockInterviewResults struct {
	Session            *entity.MockInterviewSession
	Answers            []entity.MockInterviewAnswer
	OverallScore       float64
	TotalQuestions     int
	CompletedQuestions int
}

// MockInterviewService проводит mock-интервью с оценкой ответов через AI
type MockInterviewService struct {
	repo      repository.MockInterviewRepository
	generator ai.Generator
	log       *logger.Logger
}

// NewMockInterviewService создает сервис mock-интервью
func NewMockInterviewService(repo repository.MockInterviewRepository, generator ai.Generator, log *logger.Logger) *MockInterviewService {
	return &MockInterviewService{repo: repo, generator: generator, log: log}
}

// Generate создает сессию с вопросами от AI
func (s *MockInterviewService) Generate(ctx context.Context, userID uuid.UUID, in GenerateMockInput) (*entity.MockInterviewSession, error) {
	role := strings.TrimSpace(in.Role)
	experience := strings.TrimSpace(in.Experience)
	topics := NormalizeTopics(in.Topics)
	if role == "" || experience == "" || len(topics) == 0 {
		return nil, apperrors.New(apperrors.ErrMissingField, "Role, experience, and topics are required")
	}

	count := DefaultMockQuestions
	if in.NumberOfQuestions != nil {
		count = *in.NumberOfQuestions
	}
	if count < MinMockQuestions || count > MaxMockQuestions {
		return nil, apperrors.Newf(apperrors.ErrCountOutOfRange,
			"Number of questions must be between %d and %d", MinMockQuestions, MaxMockQuestions)
	}

	raw, err := s.generator.Generate(ctx, ai.MockInterviewPrompt(role, experience, strings.Join(topics, ", "), count))
	if err != nil {
		return nil, fmt.Errorf("generate mock interview: %w", err)
	}

	var generated []entity.MockQuestion
	if err := ai.DecodeJSON(raw, &generated); err != nil {
		s.log.Warn("[MockInterviewService] AI response rejected", "user_id", userID, "error", err)
		return nil, apperrors.New(apperrors.ErrGenerationFailed, "Failed to generate interview questions")
	}

	questions := make([]entity.MockQuestion, 0, len(generated))
	for _, q := range generated {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		q.Type = entity.NormalizeMockQuestionType(q.Type)
		if q.ExpectedTopics == nil {
			q.ExpectedTopics = []string{}
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, apperrors.New(apperrors.ErrGenerationFailed, "Failed to generate interview questions")
	}

	session := &entity.MockInterviewSession{
		UserID:          userID,
		Role:            role,
		Experience:      experience,
		Topics:          topics,
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentQuestion: 0,
		Status:          entity.MockStatusInProgress,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create mock session: %w", err)
	}

	s.log.Info("[MockInterviewService] session created", "session_id", session.ID, "user_id", userID, "questions", len(questions))
	return session, nil
}

func (s *MockInterviewService) loadOwnedSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.MockInterviewSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgMockSessionNotFound)
		}
		return nil, fmt.Errorf("get mock session %s: %w", sessionID, err)
	}
	if !session.IsOwnedBy(userID) {
		return nil, apperrors.New(apperrors.ErrForbidden, msgAccessDenied)
	}
	return session, nil
}

// SubmitAnswer оценивает ответ и продвигает сессию
func (s *MockInterviewService) SubmitAnswer(ctx context.Context, userID uuid.UUID, in SubmitMockAnswerInput) (*MockAnswerOutcome, error) {
	if in.SessionID == uuid.Nil || in.QuestionIndex == nil || strings.TrimSpace(in.UserAnswer) == "" {
		return nil, apperrors.New(apperrors.ErrMissingField, "Session ID, question index, and answer are required")
	}

	session, err := s.loadOwnedSession(ctx, userID, in.SessionID)
	if err != nil {
		return nil, err
	}

	index := *in.QuestionIndex
	if index < 0 || index >= len(session.Questions) {
		return nil, apperrors.New(apperrors.ErrValidation, "Invalid question index")
	}
	if session.Status == entity.MockStatusCompleted {
		return nil, apperrors.New(apperrors.ErrAlreadySubmitted, "Interview already completed")
	}

	question := session.Questions[index]
	evaluation, err := s.evaluate(ctx, question, in.UserAnswer)
	if err != nil {
		return nil, err
	}

	audio := in.AudioDuration
	if audio < 0 {
		audio = 0
	}
	answer := &entity.MockInterviewAnswer{
		SessionID:     session.ID,
		UserID:        userID,
		Question:      question.Question,
		QuestionType:  question.Type,
		UserAnswer:    in.UserAnswer,
		Evaluation:    datatypes.NewJSONType(evaluation),
		AudioDuration: audio,
		QuestionIndex: index,
	}

	updated, err := s.repo.SaveAnswerAndAdvance(ctx, answer, session.TotalQuestions)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadySubmitted) {
			return nil, apperrors.New(apperrors.ErrAlreadySubmitted, "Interview already completed")
		}
		var ue *apperrors.UserError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, fmt.Errorf("save mock answer: %w", err)
	}

	return &MockAnswerOutcome{
		Answer:            answer,
		Evaluation:        evaluation,
		NextQuestionIndex: updated.CurrentQuestion,
		IsCompleted:       updated.Status == entity.MockStatusCompleted,
	}, nil
}

// evaluate запрашивает оценку ответа. Неразборчивый ответ модели заменяется
// фиксированной оценкой, недоступность провайдера возвращается как ошибка.
func (s *MockInterviewService) evaluate(ctx context.Context, question entity.MockQuestion, userAnswer string) (entity.Evaluation, error) {
	raw, err := s.generator.Generate(ctx, ai.EvaluationPrompt(question.Question, userAnswer, question.Type))
	if err != nil {
		return entity.Evaluation{}, fmt.Errorf("evaluate answer: %w", err)
	}

	var evaluation entity.Evaluation
	if err := decodeObject(raw, &evaluation); err != nil || strings.TrimSpace(evaluation.Feedback) == "" {
		s.log.Warn("[MockInterviewService] evaluation fallback", "error", err)
		return fallbackEvaluation(), nil
	}

	if evaluation.Score < 0 {
		evaluation.Score = 0
	}
	if evaluation.Score > maxEvaluationScore {
		evaluation.Score = maxEvaluationScore
	}
	if evaluation.Strengths == nil {
		evaluation.Strengths = []string{}
	}
	if evaluation.Improvements == nil {
		evaluation.Improvements = []string{}
	}
	return evaluation, nil
}

// Results возвращает ответы сессии и среднюю оценку (один знак после запятой)
func (s *MockInterviewService) Results(ctx context.Context, userID, sessionID uuid.UUID) (*MockInterviewResults, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.repo.ListAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list mock answers: %w", err)
	}
	if answers == nil {
		answers = []entity.MockInterviewAnswer{}
	}

	var overall float64
	if len(answers) > 0 {
		var sum float64
		for _, a := range answers {
			sum += a.Evaluation.Data().Score
		}
		overall = RoundToTenth(sum / float64(len(answers)))
	}

	return &MockInterviewResults{
		Session:            session,
		Answers:            answers,
		OverallScore:       overall,
		TotalQuestions:     session.TotalQuestions,
		CompletedQuestions: len(answers),
	}, nil
}

// ListUserInterviews возвращает сессии пользователя без вопросов
func (s *MockInterviewService) ListUserInterviews(ctx context.Context, userID uuid.UUID) ([]entity.MockInterviewSession, error) {
	sessions, err := s.repo.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mock sessions: %w", err)
	}
	return sessions, nil
}
