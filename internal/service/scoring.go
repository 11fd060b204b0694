package service

import (
	"math"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// SubmittedAnswer - ответ пользователя на один вопрос.
// nil вместо ответа или SelectedOption == nil означает, что вопрос пропущен.
type SubmittedAnswer struct {
	SelectedOption *int `json:"selectedOption"`
	TimeTaken      int  `json:"timeTaken"`
}

// ScoreCard - итог проверки ответов
type ScoreCard struct {
	Answers       []entity.AnswerRecord
	Score         int
	AnsweredCount int
	Total         int
	Percentage    float64
	Accuracy      float64
}

// ScoreAnswers сопоставляет ответы с вопросами по индексу.
// Вызывающий обязан проверить, что len(answers) == len(questions).
func ScoreAnswers(questions []entity.QuizQuestion, answers []*SubmittedAnswer) ScoreCard {
	card := ScoreCard{
		Answers: make([]entity.AnswerRecord, len(questions)),
		Total:   len(questions),
	}

	for i, question := range questions {
		record := entity.AnswerRecord{QuestionIndex: i}

		var answer *SubmittedAnswer
		if i < len(answers) {
			answer = answers[i]
		}

		if answer != nil && answer.SelectedOption != nil {
			selected := *answer.SelectedOption
			record.SelectedOption = &selected
			// вариант вне 0..3 считается отвеченным, но неверным
			record.IsCorrect = question.IsValidOption(selected) && question.IsCorrect(selected)
			if answer.TimeTaken > 0 {
				record.TimeTaken = answer.TimeTaken
			}

			card.AnsweredCount++
			if record.IsCorrect {
				card.Score++
			}
		}

		card.Answers[i] = record
	}

	if card.Total > 0 {
		card.Percentage = float64(card.Score) / float64(card.Total) * 100
	}
	if card.AnsweredCount > 0 {
		card.Accuracy = float64(card.Score) / float64(card.AnsweredCount) * 100
	}
	return card
}

// RoundHalfUp округляет до целого, половины - вверх
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RoundToTenth округляет до одного знака после запятой
func RoundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
