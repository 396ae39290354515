package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("mode", "upcoming").Msg("sync started")

	out := buf.String()
	if !strings.Contains(out, `"mode":"upcoming"`) {
		t.Errorf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"sync started"`) {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != Default() {
		t.Error("expected default logger for empty context")
	}
	if FromContext(nil) != Default() { //nolint:staticcheck // nil context is the degenerate case under test
		t.Error("expected default logger for nil context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	FromContext(ctx).Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Error("expected context logger to be used")
	}
}

func TestWithFieldAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithRecord(ctx, "ext-42")
	FromContext(ctx).Info().Msg("reconciling")

	if !strings.Contains(buf.String(), `"external_id":"ext-42"`) {
		t.Errorf("expected external_id field, got %q", buf.String())
	}
}
