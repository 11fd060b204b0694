package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// quizSummary подгружает только поля викторины, нужные для списков и аналитики
func quizSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "user_id", "title", "role", "experience", "topics", "total_questions", "created_at")
}

// GetByID возвращает результат с полной викториной (включая вопросы)
func (r *ResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuizResult, error) {
	var result entity.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

// ListByUser возвращает все результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz", quizSummary).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

// ListRecentByUser возвращает последние limit результатов пользователя
func (r *ResultRepo) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.WithContext(ctx).
		Preload("Quiz", quizSummary).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

// AveragePercentage считает среднее значение percentage на стороне БД
func (r *ResultRepo) AveragePercentage(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&entity.QuizResult{}).
		Select("COALESCE(AVG(percentage), 0)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}
