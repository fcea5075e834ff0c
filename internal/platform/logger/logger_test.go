// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/taskora/task-api/internal/config"
	"github.com/taskora/task-api/internal/platform/logger"
)

func TestSetupLogLevels(t *testing.T) {
	tests := []struct {
		name         string
		configured   string
		debugEnabled bool
		infoEnabled  bool
		warnEnabled  bool
	}{
		{"debug level", "debug", true, true, true},
		{"info level", "info", false, true, true},
		{"warn level", "warn", false, false, true},
		{"error level", "error", false, false, false},
		{"mixed case", "WARN", false, false, true},
		{"invalid level falls back to info", "verbose", false, true, true},
		{"empty level falls back to info", "", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{LogLevel: tt.configured})
			if err != nil {
				t.Fatalf("Setup returned error: %v", err)
			}
			if log == nil {
				t.Fatal("Setup returned nil logger")
			}

			ctx := context.Background()
			if got := log.Handler().Enabled(ctx, slog.LevelDebug); got != tt.debugEnabled {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugEnabled)
			}
			if got := log.Handler().Enabled(ctx, slog.LevelInfo); got != tt.infoEnabled {
				t.Errorf("info enabled = %v, want %v", got, tt.infoEnabled)
			}
			if got := log.Handler().Enabled(ctx, slog.LevelWarn); got != tt.warnEnabled {
				t.Errorf("warn enabled = %v, want %v", got, tt.warnEnabled)
			}
		})
	}
}

func TestSetupInstallsDefaultLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	log, err := logger.Setup(config.ServerConfig{LogLevel: "info"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}

	if slog.Default() != log {
		t.Error("Setup did not install the returned logger as the default")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	logBuf, log, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	ctx := logger.WithLogger(context.Background(), log.With(slog.String("component", "test")))

	got := logger.FromContext(ctx)
	got.Info("carried through context")

	logger.AssertLogContains(t, logBuf, "carried through context")
	logger.AssertLogField(t, logBuf, "component", "test")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logBuf, _, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	// No logger in this context, so the default (test) logger is used
	log := logger.FromContext(context.Background())
	log.Info("default logger used")

	logger.AssertLogContains(t, logBuf, "default logger used")
}

func TestFromContextOrDefault(t *testing.T) {
	logBuf, log, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	fallback := log.With(slog.String("component", "fallback"))

	// Context without a logger uses the fallback
	got := logger.FromContextOrDefault(context.Background(), fallback)
	got.Info("fallback used")
	logger.AssertLogField(t, logBuf, "component", "fallback")

	logBuf.Reset()

	// Context with a logger wins over the fallback
	ctx := logger.WithLogger(context.Background(), log.With(slog.String("component", "from_context")))
	got = logger.FromContextOrDefault(ctx, fallback)
	got.Info("context logger used")
	logger.AssertLogField(t, logBuf, "component", "from_context")

	// Nil fallback still yields a usable logger
	if logger.FromContextOrDefault(context.Background(), nil) == nil {
		t.Error("expected non-nil logger for nil fallback")
	}
}
