package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

func seedMockSession(t *testing.T, repo *MockInterviewRepo, userID uuid.UUID, n int) *entity.MockInterviewSession {
	t.Helper()
	questions := make([]entity.MockQuestion, n)
	for i := range questions {
		questions[i] = entity.MockQuestion{Question: "Tell me about X", Type: entity.MockQuestionBehavioral, ExpectedTopics: []string{"teamwork"}}
	}
	session := &entity.MockInterviewSession{
		UserID:         userID,
		Role:           "SRE",
		Experience:     "5",
		Topics:         entity.StringArray{"linux"},
		Questions:      questions,
		TotalQuestions: n,
		Status:         entity.MockStatusInProgress,
	}
	require.NoError(t, repo.CreateSession(t.Context(), session))
	return session
}

func mockAnswer(session *entity.MockInterviewSession, index int, score float64) *entity.MockInterviewAnswer {
	return &entity.MockInterviewAnswer{
		SessionID:     session.ID,
		UserID:        session.UserID,
		Question:      session.Questions[index].Question,
		QuestionType:  session.Questions[index].Type,
		UserAnswer:    "my answer",
		Evaluation:    datatypes.NewJSONType(entity.Evaluation{Score: score, Feedback: "ok"}),
		QuestionIndex: index,
	}
}

func TestMockInterviewRepo_SaveAnswerAndAdvance(t *testing.T) {
	db := newTestDB(t)
	repo := NewMockInterviewRepo(db)
	session := seedMockSession(t, repo, uuid.New(), 2)

	updated, err := repo.SaveAnswerAndAdvance(t.Context(), mockAnswer(session, 0, 7), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentQuestion)
	assert.Equal(t, entity.MockStatusInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	updated, err = repo.SaveAnswerAndAdvance(t.Context(), mockAnswer(session, 1, 9), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentQuestion)
	assert.Equal(t, entity.MockStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	_, err = repo.SaveAnswerAndAdvance(t.Context(), mockAnswer(session, 1, 1), 2)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted, "Завершенная сессия не принимает ответы")

	answers, err := repo.ListAnswers(t.Context(), session.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, 0, answers[0].QuestionIndex)
	assert.Equal(t, 9.0, answers[1].Evaluation.Data().Score)
}

func TestMockInterviewRepo_DuplicateAnswerRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewMockInterviewRepo(db)
	session := seedMockSession(t, repo, uuid.New(), 3)

	_, err := repo.SaveAnswerAndAdvance(t.Context(), mockAnswer(session, 0, 5), 3)
	require.NoError(t, err)
	_, err = repo.SaveAnswerAndAdvance(t.Context(), mockAnswer(session, 0, 6), 3)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	answers, err := repo.ListAnswers(t.Context(), session.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func TestMockInterviewRepo_ListSessionsByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewMockInterviewRepo(db)
	userID := uuid.New()
	seedMockSession(t, repo, userID, 3)
	seedMockSession(t, repo, uuid.New(), 3)

	sessions, err := repo.ListSessionsByUser(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Empty(t, sessions[0].Questions)
	assert.Equal(t, []string{"linux"}, []string(sessions[0].Topics))

	_, err = repo.GetSession(t.Context(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
