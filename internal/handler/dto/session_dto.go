package dto

import "github.com/yourusername/interviewprep-api/internal/service"

// CreateSessionRequest - запрос на создание сессии подготовки
type CreateSessionRequest struct {
	Role          string           `json:"role"`
	Experience    string           `json:"experience"`
	TopicsToFocus string           `json:"topicsToFocus"`
	Description   string           `json:"description"`
	Questions     []service.QAPair `json:"questions"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r CreateSessionRequest) ToInput() service.CreateSessionInput {
	return service.CreateSessionInput{
		Role:          r.Role,
		Experience:    r.Experience,
		TopicsToFocus: r.TopicsToFocus,
		Description:   r.Description,
		Questions:     r.Questions,
	}
}

// AddQuestionsRequest - добавление вопросов в сессию
type AddQuestionsRequest struct {
	SessionID string           `json:"sessionId"`
	Questions []service.QAPair `json:"questions"`
}

// UpdateNoteRequest - изменение заметки к вопросу
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// GenerateQuestionsRequest - генерация вопросов с ответами
type GenerateQuestionsRequest struct {
	Role              string `json:"role"`
	Experience        string `json:"experience"`
	TopicsToFocus     string `json:"topicsToFocus"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r GenerateQuestionsRequest) ToInput() service.InterviewQuestionsInput {
	return service.InterviewQuestionsInput{
		Role:              r.Role,
		Experience:        r.Experience,
		TopicsToFocus:     r.TopicsToFocus,
		NumberOfQuestions: r.NumberOfQuestions,
	}
}

// ExplanationRequest - запрос объяснения концепции
type ExplanationRequest struct {
	Question string `json:"question"`
}
