package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// MockInterviewRepository определяет методы для mock-интервью
type MockInterviewRepository interface {
	CreateSession(ctx context.Context, session *entity.MockInterviewSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*entity.MockInterviewSession, error)
	// ListSessionsByUser возвращает сессии без вопросов, новые первыми
	ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.MockInterviewSession, error)
	// SaveAnswerAndAdvance сохраняет ответ и продвигает сессию к следующему вопросу.
	// Сессия завершается, когда отвечен последний вопрос.
	SaveAnswerAndAdvance(ctx context.Context, answer *entity.MockInterviewAnswer, totalQuestions int) (*entity.MockInterviewSession, error)
	// ListAnswers возвращает ответы сессии по порядку вопросов
	ListAnswers(ctx context.Context, sessionID uuid.UUID) ([]entity.MockInterviewAnswer, error)
}
