package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func init() {
	IsTest = true
}

func TestGetLogger_Singleton(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			assert.Equal(t, tt.expected, Level())
		})
	}
}

func TestFilterSensitiveHeaders(t *testing.T) {
	filtered := filterSensitiveHeaders(map[string][]string{
		"Authorization": {"Bearer abc"},
		"Cookie":        {"session=1"},
		"X-Api-Key":     {"secret"},
		"Accept":        {"text/plain", "application/json"},
		"X-Request-Id":  {"req-1"},
	})

	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["Cookie"])
	assert.Equal(t, "[REDACTED]", filtered["X-Api-Key"])
	assert.Equal(t, "text/plain", filtered["Accept"])
	assert.Equal(t, "req-1", filtered["X-Request-Id"])
}
