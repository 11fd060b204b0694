package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/ai"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// Ограничения генерации викторины
const (
	MinQuizQuestions     = 5
	MaxQuizQuestions     = 20
	DefaultQuizQuestions = 10
)

// GenerateQuizInput - параметры генерации викторины.
// nil в NumberOfQuestions/TimeLimit означает значение по умолчанию.
type GenerateQuizInput struct {
	Role              string
	Experience        string
	Topics            []string
	NumberOfQuestions *int
	TimeLimit         *int
}

// QuizService предоставляет методы для работы с викторинами
type QuizService struct {
	quizRepo  repository.QuizRepository
	generator ai.Generator
	cache     *StatsCache
	log       *logger.Logger
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	generator ai.Generator,
	cache *StatsCache,
	log *logger.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		generator: generator,
		cache:     cache,
		log:       log,
	}
}

// NormalizeTopics обрезает пробелы и убирает пустые темы
func NormalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// GenerateQuiz запрашивает вопросы у AI, проверяет их и сохраняет викторину.
// При любой ошибке генерации или проверки ничего не сохраняется.
func (s *QuizService) GenerateQuiz(ctx context.Context, userID uuid.UUID, in GenerateQuizInput) (*entity.Quiz, error) {
	role := strings.TrimSpace(in.Role)
	experience := strings.TrimSpace(in.Experience)
	topics := NormalizeTopics(in.Topics)
	if role == "" || experience == "" || len(topics) == 0 {
		return nil, apperrors.New(apperrors.ErrMissingField, "Role, experience, and topics are required")
	}

	count := DefaultQuizQuestions
	if in.NumberOfQuestions != nil {
		count = *in.NumberOfQuestions
	}
	if count < MinQuizQuestions || count > MaxQuizQuestions {
		return nil, apperrors.Newf(apperrors.ErrCountOutOfRange,
			"Number of questions must be between %d and %d", MinQuizQuestions, MaxQuizQuestions)
	}

	timeLimit := entity.DefaultTimeLimit
	if in.TimeLimit != nil {
		timeLimit = *in.TimeLimit
	}

	prompt := ai.QuizPrompt(role, experience, strings.Join(topics, ", "), count)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	questions, err := parseQuizQuestions(raw)
	if err != nil {
		s.log.Warn("[QuizService] AI response rejected", "user_id", userID, "error", err, "raw_length", len(raw))
		return nil, err
	}

	quiz := &entity.Quiz{
		UserID:         userID,
		Title:          fmt.Sprintf("%s Quiz - %s years experience", role, experience),
		Role:           role,
		Experience:     experience,
		Topics:         topics,
		Questions:      questions,
		TotalQuestions: len(questions),
		TimeLimit:      timeLimit,
		IsCompleted:    false,
		StartedAt:      time.Now(),
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.log.Info("[QuizService] quiz created", "quiz_id", quiz.ID, "user_id", userID, "questions", quiz.TotalQuestions)
	return quiz, nil
}

// generatedQuestion - вопрос в ответе AI. CorrectAnswer - указатель,
// чтобы отличить отсутствующий ключ ответа от варианта 0.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// parseQuizQuestions разбирает ответ AI в два шага: сначала проверяется, что это
// JSON-массив, затем каждый элемент отдельно, чтобы указать индекс неверного вопроса.
func parseQuizQuestions(raw string) ([]entity.QuizQuestion, error) {
	var payload json.RawMessage
	if err := ai.DecodeJSON(raw, &payload); err != nil {
		return nil, apperrors.New(apperrors.ErrGenerationFailed, msgQuizGenerationFailed)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil || len(items) == 0 {
		return nil, apperrors.New(apperrors.ErrGenerationFailed, msgNoValidQuestions)
	}

	questions := make([]entity.QuizQuestion, len(items))
	for i, item := range items {
		var g generatedQuestion
		if err := json.Unmarshal(item, &g); err != nil {
			return nil, &apperrors.QuestionFormatError{Index: i, Reason: err.Error()}
		}
		if g.CorrectAnswer == nil {
			return nil, &apperrors.QuestionFormatError{Index: i, Reason: "correctAnswer is missing"}
		}
		q := entity.QuizQuestion{
			Question:      g.Question,
			Options:       g.Options,
			CorrectAnswer: *g.CorrectAnswer,
			Explanation:   g.Explanation,
		}
		if reason := q.Validate(); reason != "" {
			return nil, &apperrors.QuestionFormatError{Index: i, Reason: reason}
		}
		questions[i] = q
	}
	return questions, nil
}

// loadOwnedQuiz возвращает викторину, если она принадлежит пользователю
func (s *QuizService) loadOwnedQuiz(ctx context.Context, userID, quizID uuid.UUID) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgQuizNotFound)
		}
		return nil, fmt.Errorf("get quiz %s: %w", quizID, err)
	}
	if !quiz.IsOwnedBy(userID) {
		return nil, apperrors.New(apperrors.ErrForbidden, msgAccessDenied)
	}
	return quiz, nil
}

// GetQuiz возвращает викторину владельца вместе с вопросами
func (s *QuizService) GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*entity.Quiz, error) {
	return s.loadOwnedQuiz(ctx, userID, quizID)
}

// ListUserQuizzes возвращает викторины пользователя без вопросов, новые первыми
func (s *QuizService) ListUserQuizzes(ctx context.Context, userID uuid.UUID) ([]entity.Quiz, error) {
	quizzes, err := s.quizRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// DeleteQuiz удаляет викторину вместе со всеми ее результатами
func (s *QuizService) DeleteQuiz(ctx context.Context, userID, quizID uuid.UUID) error {
	if _, err := s.loadOwnedQuiz(ctx, userID, quizID); err != nil {
		return err
	}
	if err := s.quizRepo.DeleteWithResults(ctx, quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.New(apperrors.ErrNotFound, msgQuizNotFound)
		}
		return fmt.Errorf("delete quiz %s: %w", quizID, err)
	}

	s.cache.Invalidate(ctx, userID)
	s.log.Info("[QuizService] quiz deleted", "quiz_id", quizID, "user_id", userID)
	return nil
}
