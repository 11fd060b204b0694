package postgres

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// newTestDB поднимает изолированную in-memory sqlite базу со схемой всех сущностей
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Quiz{},
		&entity.QuizResult{},
		&entity.InterviewSession{},
		&entity.SessionQuestion{},
		&entity.MockInterviewSession{},
		&entity.MockInterviewAnswer{},
	))
	return db
}

func sampleQuestions(n int) []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, n)
	for i := range questions {
		questions[i] = entity.QuizQuestion{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
		}
	}
	return questions
}

func seedQuiz(t *testing.T, repo *QuizRepo, userID uuid.UUID, topics ...string) *entity.Quiz {
	t.Helper()
	quiz := &entity.Quiz{
		UserID:         userID,
		Title:          "Backend Engineer Quiz - 3 years experience",
		Role:           "Backend Engineer",
		Experience:     "3",
		Topics:         topics,
		Questions:      sampleQuestions(4),
		TotalQuestions: 4,
		TimeLimit:      entity.DefaultTimeLimit,
		StartedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(t.Context(), quiz))
	return quiz
}

func intPtr(v int) *int { return &v }
