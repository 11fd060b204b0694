package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// GenerateMockRequest - запрос на новое mock-интервью
type GenerateMockRequest struct {
	Role              string `json:"role"`
	Experience        string `json:"experience"`
	Topics            Topics `json:"topics"`
	NumberOfQuestions *int   `json:"numberOfQuestions"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r GenerateMockRequest) ToInput() service.GenerateMockInput {
	return service.GenerateMockInput{
		Role:              r.Role,
		Experience:        r.Experience,
		Topics:            []string(r.Topics),
		NumberOfQuestions: r.NumberOfQuestions,
	}
}

// SubmitMockAnswerRequest - ответ кандидата на вопрос
type SubmitMockAnswerRequest struct {
	SessionID     string `json:"sessionId"`
	QuestionIndex *int   `json:"questionIndex"`
	UserAnswer    string `json:"userAnswer"`
	AudioDuration int    `json:"audioDuration"`
}

// MockSessionResponse - сессия mock-интервью
type MockSessionResponse struct {
	ID              uuid.UUID             `json:"_id"`
	Role            string                `json:"role"`
	Experience      string                `json:"experience"`
	Topics          []string              `json:"topics"`
	Questions       []entity.MockQuestion `json:"questions,omitempty"`
	TotalQuestions  int                   `json:"totalQuestions"`
	CurrentQuestion int                   `json:"currentQuestion"`
	Status          string                `json:"status"`
	CompletedAt     *time.Time            `json:"completedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// NewMockSessionResponse создает DTO сессии
func NewMockSessionResponse(s *entity.MockInterviewSession, withQuestions bool) *MockSessionResponse {
	if s == nil {
		return nil
	}
	topics := []string(s.Topics)
	if topics == nil {
		topics = []string{}
	}
	resp := &MockSessionResponse{
		ID:              s.ID,
		Role:            s.Role,
		Experience:      s.Experience,
		Topics:          topics,
		TotalQuestions:  s.TotalQuestions,
		CurrentQuestion: s.CurrentQuestion,
		Status:          s.Status,
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
	}
	if withQuestions {
		resp.Questions = []entity.MockQuestion(s.Questions)
	}
	return resp
}

// NewMockSessionListResponse создает DTO списка сессий (без вопросов)
func NewMockSessionListResponse(sessions []entity.MockInterviewSession) []*MockSessionResponse {
	out := make([]*MockSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, NewMockSessionResponse(&sessions[i], false))
	}
	return out
}

// MockAnswerResponse - результат оценки ответа
type MockAnswerResponse struct {
	AnswerID          uuid.UUID         `json:"answerId"`
	Evaluation        entity.Evaluation `json:"evaluation"`
	NextQuestionIndex int               `json:"nextQuestionIndex"`
	IsCompleted       bool              `json:"isCompleted"`
}

// NewMockAnswerResponse создает DTO оценки ответа
func NewMockAnswerResponse(o *service.MockAnswerOutcome) *MockAnswerResponse {
	resp := &MockAnswerResponse{
		Evaluation:        o.Evaluation,
		NextQuestionIndex: o.NextQuestionIndex,
		IsCompleted:       o.IsCompleted,
	}
	if o.Answer != nil {
		resp.AnswerID = o.Answer.ID
	}
	return resp
}

// MockAnswerView - сохраненный ответ в итогах интервью
type MockAnswerView struct {
	ID            uuid.UUID         `json:"_id"`
	QuestionIndex int               `json:"questionIndex"`
	Question      string            `json:"question"`
	QuestionType  string            `json:"questionType"`
	UserAnswer    string            `json:"userAnswer"`
	Evaluation    entity.Evaluation `json:"evaluation"`
	AudioDuration int               `json:"audioDuration"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// MockResultsResponse - итоги mock-интервью
type MockResultsResponse struct {
	Session            *MockSessionResponse `json:"session"`
	Answers            []MockAnswerView     `json:"answers"`
	OverallScore       float64              `json:"overallScore"`
	TotalQuestions     int                  `json:"totalQuestions"`
	CompletedQuestions int                  `json:"completedQuestions"`
}

// NewMockResultsResponse создает DTO итогов интервью
func NewMockResultsResponse(r *service.MockInterviewResults) *MockResultsResponse {
	answers := make([]MockAnswerView, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, MockAnswerView{
			ID:            a.ID,
			QuestionIndex: a.QuestionIndex,
			Question:      a.Question,
			QuestionType:  a.QuestionType,
			UserAnswer:    a.UserAnswer,
			Evaluation:    a.Evaluation.Data(),
			AudioDuration: a.AudioDuration,
			CreatedAt:     a.CreatedAt,
		})
	}
	return &MockResultsResponse{
		Session:            NewMockSessionResponse(r.Session, true),
		Answers:            answers,
		OverallScore:       r.OverallScore,
		TotalQuestions:     r.TotalQuestions,
		CompletedQuestions: r.CompletedQuestions,
	}
}
