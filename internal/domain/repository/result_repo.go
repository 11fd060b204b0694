package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// ResultRepository определяет методы для чтения результатов викторин.
// Результаты создаются только через QuizRepository.CompleteWithResult.
type ResultRepository interface {
	// GetByID возвращает результат вместе с викториной
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QuizResult, error)
	// ListByUser возвращает результаты пользователя (completedAt по убыванию)
	// с подгруженными заголовком и темами викторины
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.QuizResult, error)
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.QuizResult, error)
	// AveragePercentage возвращает средний процент по всем результатам пользователя (0, если их нет)
	AveragePercentage(ctx context.Context, userID uuid.UUID) (float64, error)
}
