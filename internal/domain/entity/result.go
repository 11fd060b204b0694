package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerRecord - ответ на один вопрос внутри QuizResult.
// SelectedOption == nil означает, что на вопрос не ответили.
type AnswerRecord struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedOption *int `json:"selectedOption"`
	IsCorrect      bool `json:"isCorrect"`
	TimeTaken      int  `json:"timeTaken"`
}

// Answered сообщает, был ли дан ответ
func (a AnswerRecord) Answered() bool {
	return a.SelectedOption != nil
}

// QuizResult представляет итог единственной отправки викторины.
// Все производные поля вычисляются один раз при отправке и далее не меняются.
type QuizResult struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID         uuid.UUID                         `gorm:"type:uuid;not null;index" json:"user"`
	QuizID         uuid.UUID                         `gorm:"type:uuid;not null;index" json:"quizId"`
	Answers        datatypes.JSONSlice[AnswerRecord] `gorm:"not null" json:"answers"`
	Score          int                               `gorm:"not null;default:0" json:"score"`
	TotalQuestions int                               `gorm:"not null" json:"totalQuestions"`
	Percentage     float64                           `gorm:"not null;default:0" json:"percentage"`
	Accuracy       float64                           `gorm:"not null;default:0" json:"accuracy"`
	AnsweredCount  int                               `gorm:"not null;default:0" json:"answeredCount"`
	TimeSpent      int                               `gorm:"not null;default:0" json:"timeSpent"`
	CompletedAt    time.Time                         `gorm:"not null;index" json:"completedAt"`
	CreatedAt      time.Time                         `json:"createdAt"`
	UpdatedAt      time.Time                         `json:"updatedAt"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// BeforeCreate генерирует ID
func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
