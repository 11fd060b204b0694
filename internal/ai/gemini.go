package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// DefaultModel - модель Gemini по умолчанию
const DefaultModel = "gemini-2.0-flash-lite"

// contentGenerator - часть genai.Models, которую использует клиент
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig содержит настройки клиента Gemini
type GeminiConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
}

// GeminiClient реализует Generator поверх google.golang.org/genai
type GeminiClient struct {
	models          contentGenerator
	model           string
	timeout         time.Duration
	maxOutputTokens int
	log             *logger.Logger
}

// NewGeminiClient создает клиента Gemini API
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, log *logger.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiClient(client.Models, cfg, log), nil
}

func newGeminiClient(models contentGenerator, cfg GeminiConfig, log *logger.Logger) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GeminiClient{
		models:          models,
		model:           cfg.Model,
		timeout:         cfg.Timeout,
		maxOutputTokens: cfg.MaxOutputTokens,
		log:             log,
	}
}

// Generate реализует Generator
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := applyOptions(callOptions{maxOutputTokens: c.maxOutputTokens}, opts)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var config *genai.GenerateContentConfig
	if o.maxOutputTokens > 0 {
		config = &genai.GenerateContentConfig{MaxOutputTokens: int32(o.maxOutputTokens)}
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		c.log.Warn("[Gemini] generate content failed", "model", c.model, "elapsed", time.Since(start), "error", err)
		return "", fmt.Errorf("%w: %v", apperrors.ErrServiceUnavailable, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrServiceUnavailable)
	}

	text := resp.Text()
	c.log.Debug("[Gemini] content generated", "model", c.model, "elapsed", time.Since(start), "chars", len(text))
	return text, nil
}
