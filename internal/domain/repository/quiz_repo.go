package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error)
	// ListByUser возвращает викторины пользователя без вопросов, новые первыми
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Quiz, error)
	// CountByUser считает викторины пользователя; completed == nil - все
	CountByUser(ctx context.Context, userID uuid.UUID, completed *bool) (int64, error)
	// CompleteWithResult в одной транзакции переводит викторину в завершенное состояние
	// (только если она еще не завершена) и сохраняет результат.
	CompleteWithResult(ctx context.Context, quizID, userID uuid.UUID, result *entity.QuizResult) error
	// DeleteWithResults удаляет результаты викторины и саму викторину
	DeleteWithResults(ctx context.Context, id uuid.UUID) error
}
