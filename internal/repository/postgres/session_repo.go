package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий сессий подготовки
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// questionsOrder - закрепленные вопросы первыми, затем в порядке добавления
func questionsOrder(db *gorm.DB) *gorm.DB {
	return db.Order("is_pinned DESC").Order("created_at ASC")
}

// Create сохраняет сессию; вопросы из session.Questions создаются в той же транзакции
func (r *SessionRepo) Create(ctx context.Context, session *entity.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// ListByUser возвращает сессии пользователя, новые первыми
func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.InterviewSession, error) {
	var sessions []entity.InterviewSession
	err := r.db.WithContext(ctx).
		Preload("Questions", questionsOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// GetByID возвращает сессию вместе с вопросами
func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSession, error) {
	var session entity.InterviewSession
	err := r.db.WithContext(ctx).
		Preload("Questions", questionsOrder).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

// Delete удаляет сессию и ее вопросы
func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&entity.SessionQuestion{}).Error; err != nil {
			return fmt.Errorf("delete questions of session %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&entity.InterviewSession{})
		if res.Error != nil {
			return fmt.Errorf("delete session %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// AddQuestions добавляет вопросы пачкой
func (r *SessionRepo) AddQuestions(ctx context.Context, questions []entity.SessionQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

// GetQuestion возвращает вопрос по ID
func (r *SessionRepo) GetQuestion(ctx context.Context, id uuid.UUID) (*entity.SessionQuestion, error) {
	var question entity.SessionQuestion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

// TogglePin инвертирует is_pinned одним UPDATE
func (r *SessionRepo) TogglePin(ctx context.Context, questionID uuid.UUID) (*entity.SessionQuestion, error) {
	res := r.db.WithContext(ctx).Model(&entity.SessionQuestion{}).
		Where("id = ?", questionID).
		Update("is_pinned", gorm.Expr("NOT is_pinned"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetQuestion(ctx, questionID)
}

// UpdateNote обновляет заметку к вопросу
func (r *SessionRepo) UpdateNote(ctx context.Context, questionID uuid.UUID, note string) (*entity.SessionQuestion, error) {
	res := r.db.WithContext(ctx).Model(&entity.SessionQuestion{}).
		Where("id = ?", questionID).
		Update("note", note)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetQuestion(ctx, questionID)
}
