package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

// MockInterviewRepo реализует repository.MockInterviewRepository
type MockInterviewRepo struct {
	db *gorm.DB
}

// NewMockInterviewRepo создает новый репозиторий mock-интервью
func NewMockInterviewRepo(db *gorm.DB) *MockInterviewRepo {
	return &MockInterviewRepo{db: db}
}

// CreateSession сохраняет новую сессию
func (r *MockInterviewRepo) CreateSession(ctx context.Context, session *entity.MockInterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSession возвращает сессию по ID
func (r *MockInterviewRepo) GetSession(ctx context.Context, id uuid.UUID) (*entity.MockInterviewSession, error) {
	var session entity.MockInterviewSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

// ListSessionsByUser возвращает сессии пользователя без вопросов
func (r *MockInterviewRepo) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.MockInterviewSession, error) {
	var sessions []entity.MockInterviewSession
	err := r.db.WithContext(ctx).
		Omit("questions").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// SaveAnswerAndAdvance сохраняет ответ и сдвигает current_question.
// Продвижение выполняется условным UPDATE по status = in-progress:
// завершенная сессия не принимает ответы (ErrAlreadySubmitted),
// повторный ответ на тот же вопрос отклоняется уникальным индексом (ErrConflict).
func (r *MockInterviewRepo) SaveAnswerAndAdvance(ctx context.Context, answer *entity.MockInterviewAnswer, totalQuestions int) (*entity.MockInterviewSession, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next := answer.QuestionIndex + 1
		updates := map[string]interface{}{"current_question": next}
		if next >= totalQuestions {
			updates["status"] = entity.MockStatusCompleted
			updates["completed_at"] = time.Now()
		}

		res := tx.Model(&entity.MockInterviewSession{}).
			Where("id = ? AND status = ?", answer.SessionID, entity.MockStatusInProgress).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("advance mock session %s: %w", answer.SessionID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: mock session %s is completed", apperrors.ErrAlreadySubmitted, answer.SessionID)
		}

		if err := tx.Create(answer).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Newf(apperrors.ErrConflict, "Question %d has already been answered", answer.QuestionIndex)
			}
			return fmt.Errorf("save mock answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetSession(ctx, answer.SessionID)
}

// ListAnswers возвращает ответы сессии по возрастанию индекса вопроса
func (r *MockInterviewRepo) ListAnswers(ctx context.Context, sessionID uuid.UUID) ([]entity.MockInterviewAnswer, error) {
	var answers []entity.MockInterviewAnswer
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("question_index ASC").
		Find(&answers).Error
	return answers, err
}
