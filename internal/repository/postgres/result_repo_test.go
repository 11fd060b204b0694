package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

func TestResultRepo_ListByUser_NewestFirstWithQuizTopics(t *testing.T) {
	db := newTestDB(t)
	quizzes := NewQuizRepo(db)
	repo := NewResultRepo(db)
	userID := uuid.New()

	older := seedQuiz(t, quizzes, userID, "go", "sql")
	newer := seedQuiz(t, quizzes, userID, "redis")
	foreign := seedQuiz(t, quizzes, uuid.New(), "go")

	r1 := newResult(older, 1)
	r1.CompletedAt = time.Now().Add(-time.Hour)
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), older.ID, userID, r1))
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), newer.ID, userID, newResult(newer, 3)))
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), foreign.ID, foreign.UserID, newResult(foreign, 4)))

	results, err := repo.ListByUser(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, newer.ID, results[0].QuizID)
	assert.Equal(t, older.ID, results[1].QuizID)

	require.NotNil(t, results[1].Quiz)
	assert.Equal(t, older.Title, results[1].Quiz.Title)
	assert.Equal(t, []string{"go", "sql"}, []string(results[1].Quiz.Topics))
	assert.Empty(t, results[1].Quiz.Questions, "Вопросы в списке не подгружаются")

	recent, err := repo.ListRecentByUser(t.Context(), userID, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newer.ID, recent[0].QuizID)
}

func TestResultRepo_GetByID(t *testing.T) {
	db := newTestDB(t)
	quizzes := NewQuizRepo(db)
	repo := NewResultRepo(db)
	quiz := seedQuiz(t, quizzes, uuid.New(), "go")

	result := newResult(quiz, 2)
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), quiz.ID, quiz.UserID, result))

	got, err := repo.GetByID(t.Context(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Score)
	require.Len(t, got.Answers, 1)
	require.NotNil(t, got.Answers[0].SelectedOption)
	assert.Equal(t, 0, *got.Answers[0].SelectedOption)
	require.NotNil(t, got.Quiz)
	assert.Len(t, got.Quiz.Questions, 4, "Результат отдается с полной викториной")

	_, err = repo.GetByID(t.Context(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResultRepo_AveragePercentage(t *testing.T) {
	db := newTestDB(t)
	quizzes := NewQuizRepo(db)
	repo := NewResultRepo(db)
	userID := uuid.New()

	avg, err := repo.AveragePercentage(t.Context(), userID)
	require.NoError(t, err)
	assert.Zero(t, avg, "Без результатов среднее равно нулю")

	first := seedQuiz(t, quizzes, userID, "go")
	second := seedQuiz(t, quizzes, userID, "go")
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), first.ID, userID, newResult(first, 1)))
	require.NoError(t, quizzes.CompleteWithResult(t.Context(), second.ID, userID, newResult(second, 3)))

	avg, err = repo.AveragePercentage(t.Context(), userID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, avg, 0.001)
}
