package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверные учетные данные).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда ресурс принадлежит другому пользователю.
	ErrForbidden = errors.New("access denied")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, email уже зарегистрирован).
	ErrConflict = errors.New("resource state conflict")
)

// Ошибки генерации и прохождения викторин
var (
	// ErrMissingField - отсутствует обязательное поле запроса.
	ErrMissingField = errors.New("required field is missing")

	// ErrCountOutOfRange - количество вопросов вне допустимого диапазона.
	ErrCountOutOfRange = errors.New("number of questions is out of range")

	// ErrGenerationFailed - ответ AI не удалось превратить в набор вопросов.
	ErrGenerationFailed = errors.New("failed to generate questions")

	// ErrInvalidQuestionFormat - один из сгенерированных вопросов имеет неверную структуру.
	ErrInvalidQuestionFormat = errors.New("invalid question format")

	// ErrAlreadySubmitted - викторина уже завершена, повторная отправка запрещена.
	ErrAlreadySubmitted = errors.New("quiz already submitted")

	// ErrLengthMismatch - количество ответов не совпадает с количеством вопросов.
	ErrLengthMismatch = errors.New("answers count does not match questions count")

	// ErrServiceUnavailable - AI провайдер недоступен, запрос можно повторить.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrMalformedResponse - ответ AI не является валидным JSON.
	ErrMalformedResponse = errors.New("malformed ai response")

	// ErrInconsistentWrite - викторина помечена завершенной, но результат не сохранен.
	// Требует ручной сверки, никогда не превращается в успешный ответ.
	ErrInconsistentWrite = errors.New("inconsistent write")

	// ErrRateLimited - превышен лимит запросов.
	ErrRateLimited = errors.New("too many requests")
)

// QuestionFormatError указывает индекс вопроса, не прошедшего проверку.
type QuestionFormatError struct {
	Index  int
	Reason string
}

func (e *QuestionFormatError) Error() string {
	return fmt.Sprintf("Invalid question format at index %d: %s", e.Index, e.Reason)
}

// Unwrap позволяет сопоставлять ошибку с ErrInvalidQuestionFormat через errors.Is.
func (e *QuestionFormatError) Unwrap() error {
	return ErrInvalidQuestionFormat
}

// UserError - ошибка с сообщением, которое можно показать клиенту как есть.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// New создает ошибку заданного типа с сообщением для клиента.
func New(kind error, message string) error {
	return &UserError{Kind: kind, Message: message}
}

// Newf аналогичен New, но форматирует сообщение.
func Newf(kind error, format string, args ...interface{}) error {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PublicMessage возвращает сообщение для клиента, если ошибка его содержит.
func PublicMessage(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message, true
	}
	var qe *QuestionFormatError
	if errors.As(err, &qe) {
		return fmt.Sprintf("Invalid question format at index %d", qe.Index), true
	}
	return "", false
}
