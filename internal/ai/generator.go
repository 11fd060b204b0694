package ai

import "context"

// Generator - текстовый AI провайдер. Реализация создается один раз при старте
// и передается сервисам.
type Generator interface {
	// Generate отправляет промпт и возвращает сырой текст ответа.
	// Недоступность провайдера возвращается как apperrors.ErrServiceUnavailable.
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// callOptions - параметры одного вызова
type callOptions struct {
	maxOutputTokens int
}

// Option настраивает один вызов Generate
type Option func(*callOptions)

// WithMaxOutputTokens ограничивает длину ответа
func WithMaxOutputTokens(n int) Option {
	return func(o *callOptions) {
		o.maxOutputTokens = n
	}
}

func applyOptions(defaults callOptions, opts []Option) callOptions {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}
