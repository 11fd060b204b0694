package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterviewSession - набор вопросов с ответами для подготовки к интервью
type InterviewSession struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user"`
	Role          string            `gorm:"size:255;not null" json:"role"`
	Experience    string            `gorm:"size:100;not null" json:"experience"`
	TopicsToFocus string            `gorm:"size:1000;not null" json:"topicsToFocus"`
	Description   string            `gorm:"type:text;not null;default:''" json:"description"`
	Questions     []SessionQuestion `gorm:"foreignKey:SessionID" json:"questions"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// BeforeCreate генерирует ID
func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// IsOwnedBy проверяет владельца сессии
func (s *InterviewSession) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID == userID
}

// SessionQuestion - вопрос с ответом внутри сессии подготовки
type SessionQuestion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null;default:''" json:"answer"`
	Note      string    `gorm:"type:text;not null;default:''" json:"note"`
	IsPinned  bool      `gorm:"not null;default:false" json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (SessionQuestion) TableName() string {
	return "session_questions"
}

// BeforeCreate генерирует ID
func (q *SessionQuestion) BeforeCreate(tx *gorm.DB) error {
	ensureID(&q.ID)
	return nil
}
