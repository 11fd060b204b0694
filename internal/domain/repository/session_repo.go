package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// SessionRepository определяет методы для сессий подготовки и их вопросов
type SessionRepository interface {
	// Create сохраняет сессию вместе с вопросами
	Create(ctx context.Context, session *entity.InterviewSession) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.InterviewSession, error)
	// GetByID возвращает сессию с вопросами: закрепленные первыми, затем по времени создания
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSession, error)
	// Delete удаляет сессию и все ее вопросы
	Delete(ctx context.Context, id uuid.UUID) error

	AddQuestions(ctx context.Context, questions []entity.SessionQuestion) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*entity.SessionQuestion, error)
	// TogglePin атомарно инвертирует is_pinned и возвращает обновленный вопрос
	TogglePin(ctx context.Context, questionID uuid.UUID) (*entity.SessionQuestion, error)
	UpdateNote(ctx context.Context, questionID uuid.UUID, note string) (*entity.SessionQuestion, error)
}
