package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// RecentResultsLimit - количество последних результатов в статистике
const RecentResultsLimit = 5

// SubmitQuizInput - ответы пользователя на викторину
type SubmitQuizInput struct {
	QuizID    uuid.UUID
	Answers   []*SubmittedAnswer
	TimeSpent int
}

// Submission - сохраненный результат и сводка для ответа клиенту
type Submission struct {
	Result *entity.QuizResult
	Quiz   *entity.Quiz
	Card   ScoreCard
}

// ResultsOverview - результаты пользователя вместе с аналитикой
type ResultsOverview struct {
	Results   []entity.QuizResult `json:"results"`
	Analytics Analytics           `json:"analytics"`
}

// RecentResult - краткая информация о результате для дашборда
type RecentResult struct {
	ID             uuid.UUID `json:"_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	QuizTitle      string    `json:"quizTitle,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}

// QuizStats - статистика для дашборда
type QuizStats struct {
	TotalQuizzes     int64          `json:"totalQuizzes"`
	CompletedQuizzes int64          `json:"completedQuizzes"`
	PendingQuizzes   int64          `json:"pendingQuizzes"`
	AverageScore     int            `json:"averageScore"`
	RecentResults    []RecentResult `json:"recentResults"`
}

// ResultService отвечает за отправку ответов, результаты и статистику
type ResultService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	cache      *StatsCache
	log        *logger.Logger
}

// NewResultService создает новый сервис результатов
func NewResultService(
	quizRepo repository.QuizRepository,
	resultRepo repository.ResultRepository,
	cache *StatsCache,
	log *logger.Logger,
) *ResultService {
	return &ResultService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		cache:      cache,
		log:        log,
	}
}

// SubmitQuiz проверяет ответы и атомарно завершает викторину.
// Предусловия проверяются по порядку: существование, владелец, статус, длина ответов.
func (s *ResultService) SubmitQuiz(ctx context.Context, userID uuid.UUID, in SubmitQuizInput) (*Submission, error) {
	if in.QuizID == uuid.Nil || in.Answers == nil {
		return nil, apperrors.New(apperrors.ErrMissingField, "Quiz ID and answers array are required")
	}
	if in.TimeSpent < 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "Time spent must be a non-negative number")
	}

	quiz, err := s.quizRepo.GetByID(ctx, in.QuizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgQuizNotFound)
		}
		return nil, fmt.Errorf("get quiz %s: %w", in.QuizID, err)
	}
	if !quiz.IsOwnedBy(userID) {
		return nil, apperrors.New(apperrors.ErrForbidden, msgAccessDenied)
	}
	if quiz.IsCompleted {
		return nil, apperrors.New(apperrors.ErrAlreadySubmitted, msgQuizAlreadySubmitted)
	}
	if len(in.Answers) != len(quiz.Questions) {
		return nil, apperrors.Newf(apperrors.ErrLengthMismatch,
			"Answers array length (%d) does not match questions count (%d)", len(in.Answers), len(quiz.Questions))
	}

	card := ScoreAnswers(quiz.Questions, in.Answers)
	result := &entity.QuizResult{
		UserID:         userID,
		QuizID:         quiz.ID,
		Answers:        card.Answers,
		Score:          card.Score,
		TotalQuestions: card.Total,
		Percentage:     card.Percentage,
		Accuracy:       card.Accuracy,
		AnsweredCount:  card.AnsweredCount,
		TimeSpent:      in.TimeSpent,
		CompletedAt:    time.Now(),
	}

	if err := s.quizRepo.CompleteWithResult(ctx, quiz.ID, userID, result); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadySubmitted):
			return nil, apperrors.New(apperrors.ErrAlreadySubmitted, msgQuizAlreadySubmitted)
		case errors.Is(err, apperrors.ErrInconsistentWrite):
			s.log.Error("[ResultService] quiz completion state is uncertain",
				"quiz_id", quiz.ID, "user_id", userID, "reconcile", true, "error", err)
			return nil, err
		default:
			return nil, fmt.Errorf("submit quiz %s: %w", quiz.ID, err)
		}
	}

	s.cache.Invalidate(ctx, userID)

	score, total := card.Score, card.Total
	quiz.IsCompleted = true
	quiz.Score = &score
	quiz.TotalScore = &total
	quiz.CompletedAt = &result.CompletedAt
	result.Quiz = quiz

	s.log.Info("[ResultService] quiz submitted",
		"quiz_id", quiz.ID, "user_id", userID, "score", card.Score, "answered", card.AnsweredCount, "total", card.Total)
	return &Submission{Result: result, Quiz: quiz, Card: card}, nil
}

// GetResult возвращает результат владельца вместе с викториной
func (s *ResultService) GetResult(ctx context.Context, userID, resultID uuid.UUID) (*entity.QuizResult, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgResultNotFound)
		}
		return nil, fmt.Errorf("get result %s: %w", resultID, err)
	}
	if result.UserID != userID {
		return nil, apperrors.New(apperrors.ErrForbidden, msgAccessDenied)
	}
	return result, nil
}

// ListResults возвращает результаты пользователя и аналитику по ним
func (s *ResultService) ListResults(ctx context.Context, userID uuid.UUID) (*ResultsOverview, error) {
	key := s.cache.resultsKey(ctx, userID)

	var cached ResultsOverview
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []entity.QuizResult{}
	}

	overview := &ResultsOverview{
		Results:   results,
		Analytics: AggregateResults(results),
	}
	s.cache.store(ctx, key, overview)
	return overview, nil
}

// ExportResults возвращает все результаты пользователя для выгрузки, в обход кеша
func (s *ResultService) ExportResults(ctx context.Context, userID uuid.UUID) ([]entity.QuizResult, error) {
	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export results: %w", err)
	}
	return results, nil
}

// GetStats собирает статистику для дашборда; запросы к БД выполняются параллельно
func (s *ResultService) GetStats(ctx context.Context, userID uuid.UUID) (*QuizStats, error) {
	key := s.cache.statsKey(ctx, userID)

	var cached QuizStats
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		stats   QuizStats
		average float64
		recent  []entity.QuizResult
	)
	completed, pending := true, false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.quizRepo.CountByUser(gctx, userID, nil)
		stats.TotalQuizzes = n
		return err
	})
	g.Go(func() error {
		n, err := s.quizRepo.CountByUser(gctx, userID, &completed)
		stats.CompletedQuizzes = n
		return err
	})
	g.Go(func() error {
		n, err := s.quizRepo.CountByUser(gctx, userID, &pending)
		stats.PendingQuizzes = n
		return err
	})
	g.Go(func() error {
		var err error
		average, err = s.resultRepo.AveragePercentage(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.resultRepo.ListRecentByUser(gctx, userID, RecentResultsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect quiz stats: %w", err)
	}

	stats.AverageScore = RoundHalfUp(average)
	stats.RecentResults = make([]RecentResult, 0, len(recent))
	for _, r := range recent {
		item := RecentResult{
			ID:             r.ID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
			CompletedAt:    r.CompletedAt,
		}
		if r.Quiz != nil {
			item.QuizTitle = r.Quiz.Title
		}
		stats.RecentResults = append(stats.RecentResults, item)
	}

	s.cache.store(ctx, key, &stats)
	return &stats, nil
}
