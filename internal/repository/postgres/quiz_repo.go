package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

// GetByID возвращает викторину по ID вместе с вопросами
func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quiz).Error; err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

// ListByUser возвращает викторины пользователя без вопросов
func (r *QuizRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.WithContext(ctx).
		Omit("questions").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// CountByUser считает викторины пользователя
func (r *QuizRepo) CountByUser(ctx context.Context, userID uuid.UUID, completed *bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Quiz{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("is_completed = ?", *completed)
	}
	err := query.Count(&count).Error
	return count, err
}

// CompleteWithResult атомарно завершает викторину и сохраняет результат.
//   - RowsAffected == 0 на условном UPDATE → викторина уже завершена (ErrAlreadySubmitted)
//   - ошибка вставки результата → откат, викторина остается незавершенной
//   - ошибка коммита после успешных записей → исход неизвестен (ErrInconsistentWrite)
func (r *QuizRepo) CompleteWithResult(ctx context.Context, quizID, userID uuid.UUID, result *entity.QuizResult) error {
	written := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Quiz{}).
			Where("id = ? AND user_id = ? AND is_completed = ?", quizID, userID, false).
			Updates(map[string]interface{}{
				"is_completed": true,
				"score":        result.Score,
				"total_score":  result.TotalQuestions,
				"completed_at": result.CompletedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("complete quiz %s: %w", quizID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: quiz %s", apperrors.ErrAlreadySubmitted, quizID)
		}

		if err := tx.Omit(clause.Associations).Create(result).Error; err != nil {
			return fmt.Errorf("save result for quiz %s: %w", quizID, err)
		}
		written = true
		return nil
	})

	if err != nil && written {
		return fmt.Errorf("%w: commit quiz %s: %v", apperrors.ErrInconsistentWrite, quizID, err)
	}
	return err
}

// DeleteWithResults удаляет викторину и все ее результаты в одной транзакции
func (r *QuizRepo) DeleteWithResults(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.QuizResult{}).Error; err != nil {
			return fmt.Errorf("delete results of quiz %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&entity.Quiz{})
		if res.Error != nil {
			return fmt.Errorf("delete quiz %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
