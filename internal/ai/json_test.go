package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[1,2]\n```", "[1,2]"},
		{"bare fence", "```\n{\"x\":true}\n```", `{"x":true}`},
		{"surrounding whitespace", "  \n```json [3]```  \n", "[3]"},
		{"only leading fence", "```json\n[4]", "[4]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.raw))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var got []struct {
		Question string `json:"question"`
	}
	require.NoError(t, DecodeJSON("```json\n[{\"question\":\"What is Go?\"}]\n```", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "What is Go?", got[0].Question)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var got []interface{}
	err := DecodeJSON("Sure! Here are your questions: [", &got)
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}
