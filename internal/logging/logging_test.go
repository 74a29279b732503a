package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFromContext(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop().Sugar()
	ctx := WithLogger(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Errorf("FromContext returned a different logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Errorf("FromContext without logger got nil, expected default logger")
	}
}

func TestLevelFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		expected zapcore.Level
	}{
		{in: "debug", expected: zapcore.DebugLevel},
		{in: " WARN ", expected: zapcore.WarnLevel},
		{in: "error", expected: zapcore.ErrorLevel},
		{in: "", expected: zapcore.InfoLevel},
		{in: "verbose", expected: zapcore.InfoLevel},
	}
	for _, test := range tests {
		if got := levelFor(test.in); got != test.expected {
			t.Errorf("levelFor(%q) got: %v, expected: %v", test.in, got, test.expected)
		}
	}
}
