package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultTimeLimit - лимит времени викторины по умолчанию (минуты, носит рекомендательный характер).
const DefaultTimeLimit = 30

// Quiz представляет сгенерированную AI викторину
type Quiz struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID         uuid.UUID                         `gorm:"type:uuid;not null;index" json:"user"`
	Title          string                            `gorm:"size:255;not null" json:"title"`
	Role           string                            `gorm:"size:255;not null" json:"role"`
	Experience     string                            `gorm:"size:100;not null" json:"experience"`
	Topics         StringArray                       `gorm:"type:jsonb;not null" json:"topics"`
	Questions      datatypes.JSONSlice[QuizQuestion] `gorm:"not null" json:"questions,omitempty"`
	TotalQuestions int                               `gorm:"not null" json:"totalQuestions"`
	TimeLimit      int                               `gorm:"not null;default:30" json:"timeLimit"`
	IsCompleted    bool                              `gorm:"not null;default:false;index" json:"isCompleted"`
	Score          *int                              `json:"score,omitempty"`
	TotalScore     *int                              `json:"totalScore,omitempty"`
	StartedAt      time.Time                         `gorm:"not null" json:"startedAt"`
	CompletedAt    *time.Time                        `json:"completedAt,omitempty"`
	CreatedAt      time.Time                         `json:"createdAt"`
	UpdatedAt      time.Time                         `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// BeforeCreate генерирует ID
func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	ensureID(&q.ID)
	return nil
}

// IsOwnedBy проверяет, принадлежит ли викторина пользователю
func (q *Quiz) IsOwnedBy(userID uuid.UUID) bool {
	return q.UserID == userID
}
