package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact_HidesSecrets(t *testing.T) {
	in := []interface{}{"user_id", "u1", "password", "hunter2", "jwt_token", "abc", "api_key", "k"}
	out := redact(in)

	assert.Equal(t, "u1", out[1])
	assert.Equal(t, "[REDACTED]", out[3])
	assert.Equal(t, "[REDACTED]", out[5])
	assert.Equal(t, "[REDACTED]", out[7])
	assert.Equal(t, "hunter2", in[3], "исходный срез не должен изменяться")
}

func TestRedact_OddLength(t *testing.T) {
	out := redact([]interface{}{"quiz_id", "q1", "dangling"})
	assert.Len(t, out, 3)
	assert.Equal(t, "dangling", out[2])
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "production"} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.SugaredLogger)
		l.Info("[Test] logger created", "mode", mode)
	}
}
