package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// QAPair - вопрос с ответом, переданный клиентом
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CreateSessionInput - параметры новой сессии подготовки
type CreateSessionInput struct {
	Role          string
	Experience    string
	TopicsToFocus string
	Description   string
	Questions     []QAPair
}

// SessionService управляет сессиями подготовки и их вопросами
type SessionService struct {
	repo repository.SessionRepository
	log  *logger.Logger
}

// NewSessionService создает сервис сессий
func NewSessionService(repo repository.SessionRepository, log *logger.Logger) *SessionService {
	return &SessionService{repo: repo, log: log}
}

func buildSessionQuestions(sessionID uuid.UUID, pairs []QAPair) ([]entity.SessionQuestion, error) {
	if len(pairs) == 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "Questions array is required and cannot be empty.")
	}
	out := make([]entity.SessionQuestion, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p.Question) == "" {
			return nil, apperrors.New(apperrors.ErrValidation, "Each question must have a valid 'question' field.")
		}
		out = append(out, entity.SessionQuestion{
			SessionID: sessionID,
			Question:  p.Question,
			Answer:    p.Answer,
		})
	}
	return out, nil
}

// CreateSession создает сессию вместе с вопросами
func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, in CreateSessionInput) (*entity.InterviewSession, error) {
	questions, err := buildSessionQuestions(uuid.Nil, in.Questions)
	if err != nil {
		return nil, err
	}

	session := &entity.InterviewSession{
		UserID:        userID,
		Role:          strings.TrimSpace(in.Role),
		Experience:    strings.TrimSpace(in.Experience),
		TopicsToFocus: strings.TrimSpace(in.TopicsToFocus),
		Description:   in.Description,
		Questions:     questions,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("[SessionService] session created", "session_id", session.ID, "questions", len(questions))
	return session, nil
}

// ListSessions возвращает сессии пользователя, новые первыми
func (s *SessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]entity.InterviewSession, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) loadOwnedSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.InterviewSession, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgSessionNotFound)
		}
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if !session.IsOwnedBy(userID) {
		return nil, apperrors.New(apperrors.ErrForbidden, msgAccessDenied)
	}
	return session, nil
}

// GetSession возвращает сессию с вопросами: закрепленные первыми
func (s *SessionService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.InterviewSession, error) {
	return s.loadOwnedSession(ctx, userID, sessionID)
}

// DeleteSession удаляет сессию вместе с вопросами
func (s *SessionService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.New(apperrors.ErrNotFound, msgSessionNotFound)
		}
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

// AddQuestions добавляет вопросы в существующую сессию
func (s *SessionService) AddQuestions(ctx context.Context, userID, sessionID uuid.UUID, pairs []QAPair) ([]entity.SessionQuestion, error) {
	if sessionID == uuid.Nil {
		return nil, apperrors.New(apperrors.ErrMissingField, "Session ID and questions are required")
	}
	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	questions, err := buildSessionQuestions(sessionID, pairs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddQuestions(ctx, questions); err != nil {
		return nil, fmt.Errorf("add questions to session %s: %w", sessionID, err)
	}
	return questions, nil
}

// loadOwnedQuestion проверяет владельца вопроса через его сессию
func (s *SessionService) loadOwnedQuestion(ctx context.Context, userID, questionID uuid.UUID) (*entity.SessionQuestion, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, msgQuestionNotFound)
		}
		return nil, fmt.Errorf("get question %s: %w", questionID, err)
	}
	if _, err := s.loadOwnedSession(ctx, userID, question.SessionID); err != nil {
		return nil, err
	}
	return question, nil
}

// TogglePin закрепляет или открепляет вопрос
func (s *SessionService) TogglePin(ctx context.Context, userID, questionID uuid.UUID) (*entity.SessionQuestion, error) {
	if _, err := s.loadOwnedQuestion(ctx, userID, questionID); err != nil {
		return nil, err
	}
	question, err := s.repo.TogglePin(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("toggle pin %s: %w", questionID, err)
	}
	return question, nil
}

// UpdateNote сохраняет заметку пользователя к вопросу
func (s *SessionService) UpdateNote(ctx context.Context, userID, questionID uuid.UUID, note string) (*entity.SessionQuestion, error) {
	if _, err := s.loadOwnedQuestion(ctx, userID, questionID); err != nil {
		return nil, err
	}
	question, err := s.repo.UpdateNote(ctx, questionID, note)
	if err != nil {
		return nil, fmt.Errorf("update note %s: %w", questionID, err)
	}
	return question, nil
}
