package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статусы сессии mock-интервью
const (
	MockStatusInProgress = "in-progress"
	MockStatusCompleted  = "completed"
)

// Типы вопросов mock-интервью
const (
	MockQuestionTechnical   = "technical"
	MockQuestionBehavioral  = "behavioral"
	MockQuestionSituational = "situational"
)

// NormalizeMockQuestionType приводит неизвестный тип к technical.
func NormalizeMockQuestionType(t string) string {
	switch t {
	case MockQuestionTechnical, MockQuestionBehavioral, MockQuestionSituational:
		return t
	default:
		return MockQuestionTechnical
	}
}

// MockQuestion - вопрос mock-интервью
type MockQuestion struct {
	Question       string   `json:"question"`
	Type           string   `json:"type"`
	ExpectedTopics []string `json:"expectedTopics"`
}

// Evaluation - оценка ответа кандидата от AI (score 0..10)
type Evaluation struct {
	Score           float64  `json:"score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	SuggestedAnswer string   `json:"suggestedAnswer"`
}

// MockInterviewSession - сессия голосового/текстового mock-интервью
type MockInterviewSession struct {
	ID              uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID          uuid.UUID                         `gorm:"type:uuid;not null;index" json:"user"`
	Role            string                            `gorm:"size:255;not null" json:"role"`
	Experience      string                            `gorm:"size:100;not null" json:"experience"`
	Topics          StringArray                       `gorm:"type:jsonb;not null" json:"topics"`
	Questions       datatypes.JSONSlice[MockQuestion] `gorm:"not null" json:"questions,omitempty"`
	TotalQuestions  int                               `gorm:"not null" json:"totalQuestions"`
	CurrentQuestion int                               `gorm:"not null;default:0" json:"currentQuestion"`
	Status          string                            `gorm:"size:20;not null;default:'in-progress';index" json:"status"`
	CompletedAt     *time.Time                        `json:"completedAt,omitempty"`
	CreatedAt       time.Time                         `json:"createdAt"`
	UpdatedAt       time.Time                         `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (MockInterviewSession) TableName() string {
	return "mock_interview_sessions"
}

// BeforeCreate генерирует ID
func (s *MockInterviewSession) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// IsOwnedBy проверяет владельца сессии
func (s *MockInterviewSession) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID == userID
}

// MockInterviewAnswer - ответ кандидата на вопрос mock-интервью вместе с оценкой
type MockInterviewAnswer struct {
	ID            uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"_id"`
	SessionID     uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex:idx_mock_answer_question" json:"session"`
	UserID        uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user"`
	Question      string                         `gorm:"type:text;not null" json:"question"`
	QuestionType  string                         `gorm:"size:20;not null" json:"questionType"`
	UserAnswer    string                         `gorm:"type:text;not null" json:"userAnswer"`
	Evaluation    datatypes.JSONType[Evaluation] `gorm:"not null" json:"evaluation"`
	AudioDuration int                            `gorm:"not null;default:0" json:"audioDuration"`
	QuestionIndex int                            `gorm:"not null;uniqueIndex:idx_mock_answer_question" json:"questionIndex"`
	CreatedAt     time.Time                      `json:"createdAt"`
	UpdatedAt     time.Time                      `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (MockInterviewAnswer) TableName() string {
	return "mock_interview_answers"
}

// BeforeCreate генерирует ID
func (a *MockInterviewAnswer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
