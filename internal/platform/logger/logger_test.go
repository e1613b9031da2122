package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/langcontrol/langcontrol-api/internal/config"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO", ""} {
		log, err := Setup(config.ServerConfig{LogLevel: level})
		if err != nil {
			t.Errorf("Expected no error for level %q, got %v", level, err)
		}
		if log == nil {
			t.Errorf("Expected a logger for level %q", level)
		}
	}

	if _, err := Setup(config.ServerConfig{LogLevel: "verbose"}); err == nil {
		t.Error("Expected an error for an unknown log level")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "info", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "ERROR", expected: slog.LevelError},
	}

	for _, tc := range testCases {
		got, err := parseLevel(tc.input)
		if err != nil {
			t.Errorf("Expected no error for %q, got %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("Expected level %v for %q, got %v", tc.expected, tc.input, got)
		}
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	// Without a stored logger the fallback wins.
	if got := FromContextOrDefault(ctx, fallback); got != fallback {
		t.Error("Expected the fallback logger for a bare context")
	}

	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = WithLogger(ctx, stored)

	if got := FromContextOrDefault(ctx, fallback); got != stored {
		t.Error("Expected the stored logger to take precedence")
	}

	if got := FromContext(ctx); got != stored {
		t.Error("Expected FromContext to return the stored logger")
	}

	// Nil fallback degrades to the process default instead of panicking.
	if got := FromContextOrDefault(context.Background(), nil); got == nil {
		t.Error("Expected the process default logger for a nil fallback")
	}
}
