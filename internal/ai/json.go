package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

var (
	leadingFence  = regexp.MustCompile("^```(?:json|JSON)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// CleanResponse убирает markdown-ограждение вокруг JSON и пробелы по краям
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DecodeJSON очищает ответ модели и разбирает его в dest.
// Невалидный JSON возвращается как apperrors.ErrMalformedResponse.
func DecodeJSON(raw string, dest interface{}) error {
	cleaned := CleanResponse(raw)
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}
	return nil
}
