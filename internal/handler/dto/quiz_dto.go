package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// Topics принимает в JSON как строку, так и массив строк
type Topics []string

// UnmarshalJSON реализует json.Unmarshaler
func (t *Topics) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Topics{s}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*t = list
		return nil
	default:
		return errors.New("topics must be a string or an array of strings")
	}
}

// GenerateQuizRequest - запрос на генерацию викторины
type GenerateQuizRequest struct {
	Role              string `json:"role"`
	Experience        string `json:"experience"`
	Topics            Topics `json:"topics"`
	NumberOfQuestions *int   `json:"numberOfQuestions"`
	TimeLimit         *int   `json:"timeLimit"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r GenerateQuizRequest) ToInput() service.GenerateQuizInput {
	return service.GenerateQuizInput{
		Role:              r.Role,
		Experience:        r.Experience,
		Topics:            []string(r.Topics),
		NumberOfQuestions: r.NumberOfQuestions,
		TimeLimit:         r.TimeLimit,
	}
}

// SubmitQuizRequest - ответы пользователя на викторину
type SubmitQuizRequest struct {
	QuizID    string                     `json:"quizId"`
	Answers   []*service.SubmittedAnswer `json:"answers"`
	TimeSpent int                        `json:"timeSpent"`
}

// QuestionResponse - вопрос викторины в ответе API.
// CorrectAnswer и Explanation отсутствуют, если ключ ответов скрыт.
type QuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResponse - викторина в ответе API
type QuizResponse struct {
	ID             uuid.UUID          `json:"_id"`
	UserID         uuid.UUID          `json:"user"`
	Title          string             `json:"title"`
	Role           string             `json:"role"`
	Experience     string             `json:"experience"`
	Topics         []string           `json:"topics"`
	Questions      []QuestionResponse `json:"questions,omitempty"`
	TotalQuestions int                `json:"totalQuestions"`
	TimeLimit      int                `json:"timeLimit"`
	IsCompleted    bool               `json:"isCompleted"`
	Score          *int               `json:"score,omitempty"`
	TotalScore     *int               `json:"totalScore,omitempty"`
	StartedAt      time.Time          `json:"startedAt"`
	CompletedAt    *time.Time         `json:"completedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewQuizResponse создает DTO для викторины.
// При hideAnswers ключ ответов убирается, пока викторина не завершена.
func NewQuizResponse(quiz *entity.Quiz, hideAnswers bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	strip := hideAnswers && !quiz.IsCompleted
	var questions []QuestionResponse
	if len(quiz.Questions) > 0 {
		questions = make([]QuestionResponse, len(quiz.Questions))
		for i, q := range quiz.Questions {
			questions[i] = QuestionResponse{Question: q.Question, Options: q.Options}
			if !strip {
				correct := q.CorrectAnswer
				questions[i].CorrectAnswer = &correct
				questions[i].Explanation = q.Explanation
			}
		}
	}

	topics := []string(quiz.Topics)
	if topics == nil {
		topics = []string{}
	}

	return &QuizResponse{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		Title:          quiz.Title,
		Role:           quiz.Role,
		Experience:     quiz.Experience,
		Topics:         topics,
		Questions:      questions,
		TotalQuestions: quiz.TotalQuestions,
		TimeLimit:      quiz.TimeLimit,
		IsCompleted:    quiz.IsCompleted,
		Score:          quiz.Score,
		TotalScore:     quiz.TotalScore,
		StartedAt:      quiz.StartedAt,
		CompletedAt:    quiz.CompletedAt,
		CreatedAt:      quiz.CreatedAt,
	}
}

// NewQuizListResponse создает DTO для списка викторин (без вопросов)
func NewQuizListResponse(quizzes []entity.Quiz) []*QuizResponse {
	out := make([]*QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		item := NewQuizResponse(&quizzes[i], true)
		item.Questions = nil
		out = append(out, item)
	}
	return out
}

// SubmissionSummary - краткая сводка по отправке
type SubmissionSummary struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	Percentage     int `json:"percentage"`
	Accuracy       int `json:"accuracy"`
	AnsweredCount  int `json:"answeredCount"`
}

// SubmissionResponse - ответ на отправку викторины
type SubmissionResponse struct {
	Result  *entity.QuizResult `json:"result"`
	Quiz    *QuizResponse      `json:"quiz"`
	Summary SubmissionSummary  `json:"summary"`
}

// NewSubmissionResponse создает DTO для результата отправки
func NewSubmissionResponse(sub *service.Submission) *SubmissionResponse {
	return &SubmissionResponse{
		Result: sub.Result,
		Quiz:   NewQuizResponse(sub.Quiz, false),
		Summary: SubmissionSummary{
			Score:          sub.Card.Score,
			TotalQuestions: sub.Card.Total,
			Percentage:     service.RoundHalfUp(sub.Card.Percentage),
			Accuracy:       service.RoundHalfUp(sub.Card.Accuracy),
			AnsweredCount:  sub.Card.AnsweredCount,
		},
	}
}

// TopicStatResponse - статистика по теме
type TopicStatResponse struct {
	Topic        string `json:"topic"`
	Total        int    `json:"total"`
	Correct      int    `json:"correct"`
	QuizCount    int    `json:"quizCount"`
	AverageScore int    `json:"averageScore"`
}

// AnalyticsResponse - аналитика с округлением до целых
type AnalyticsResponse struct {
	TotalQuizzes    int                 `json:"totalQuizzes"`
	TotalQuestions  int                 `json:"totalQuestions"`
	TotalCorrect    int                 `json:"totalCorrect"`
	TotalTimeSpent  int                 `json:"totalTimeSpent"`
	AverageScore    int                 `json:"averageScore"`
	AverageAccuracy int                 `json:"averageAccuracy"`
	BestScore       int                 `json:"bestScore"`
	OverallAccuracy int                 `json:"overallAccuracy"`
	TopicAnalytics  []TopicStatResponse `json:"topicAnalytics"`
}

// NewAnalyticsResponse округляет аналитику для клиента
func NewAnalyticsResponse(a service.Analytics) AnalyticsResponse {
	topics := make([]TopicStatResponse, 0, len(a.TopicAnalytics))
	for _, t := range a.TopicAnalytics {
		topics = append(topics, TopicStatResponse{
			Topic:        t.Topic,
			Total:        t.Total,
			Correct:      t.Correct,
			QuizCount:    t.QuizCount,
			AverageScore: service.RoundHalfUp(t.AverageScore),
		})
	}
	return AnalyticsResponse{
		TotalQuizzes:    a.TotalQuizzes,
		TotalQuestions:  a.TotalQuestions,
		TotalCorrect:    a.TotalCorrect,
		TotalTimeSpent:  a.TotalTimeSpent,
		AverageScore:    service.RoundHalfUp(a.AverageScore),
		AverageAccuracy: service.RoundHalfUp(a.AverageAccuracy),
		BestScore:       service.RoundHalfUp(a.BestScore),
		OverallAccuracy: service.RoundHalfUp(a.OverallAccuracy),
		TopicAnalytics:  topics,
	}
}

// ResultResponse - результат с краткой информацией о викторине
type ResultResponse struct {
	ID             uuid.UUID             `json:"_id"`
	QuizID         uuid.UUID             `json:"quizId"`
	Answers        []entity.AnswerRecord `json:"answers"`
	Score          int                   `json:"score"`
	TotalQuestions int                   `json:"totalQuestions"`
	Percentage     float64               `json:"percentage"`
	Accuracy       float64               `json:"accuracy"`
	AnsweredCount  int                   `json:"answeredCount"`
	TimeSpent      int                   `json:"timeSpent"`
	CompletedAt    time.Time             `json:"completedAt"`
	Quiz           *QuizResponse         `json:"quiz,omitempty"`
}

// NewResultResponse создает DTO для результата.
// Викторина уже завершена, поэтому ключ ответов показывается.
func NewResultResponse(r *entity.QuizResult) *ResultResponse {
	if r == nil {
		return nil
	}
	answers := []entity.AnswerRecord(r.Answers)
	if answers == nil {
		answers = []entity.AnswerRecord{}
	}
	return &ResultResponse{
		ID:             r.ID,
		QuizID:         r.QuizID,
		Answers:        answers,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		Accuracy:       r.Accuracy,
		AnsweredCount:  r.AnsweredCount,
		TimeSpent:      r.TimeSpent,
		CompletedAt:    r.CompletedAt,
		Quiz:           NewQuizResponse(r.Quiz, false),
	}
}

// NewResultListResponse создает DTO для списка результатов
func NewResultListResponse(results []entity.QuizResult) []*ResultResponse {
	out := make([]*ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, NewResultResponse(&results[i]))
	}
	return out
}
