package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// OptionsPerQuestion - у каждого вопроса викторины ровно 4 варианта ответа.
const OptionsPerQuestion = 4

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray.
// Postgres отдает []byte, sqlite может отдать string.
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	if len(data) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(data, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// QuizQuestion - вопрос викторины, хранится внутри документа Quiz (jsonb).
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q QuizQuestion) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectAnswer
}

// IsValidOption проверяет, что индекс варианта существует
func (q QuizQuestion) IsValidOption(index int) bool {
	return index >= 0 && index < len(q.Options)
}

// Validate возвращает описание первой найденной проблемы или пустую строку.
func (q QuizQuestion) Validate() string {
	if strings.TrimSpace(q.Question) == "" {
		return "question text is empty"
	}
	if len(q.Options) != OptionsPerQuestion {
		return "options must contain exactly 4 items"
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionsPerQuestion {
		return "correctAnswer must be between 0 and 3"
	}
	return ""
}
