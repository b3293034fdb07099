package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("NewLogger(%q): %v", env, err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewConfig_InitialFields(t *testing.T) {
	cfg, err := newConfig("prod", "")
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	if got := cfg.InitialFields["service"]; got != ServiceName {
		t.Errorf("service = %v, want %s", got, ServiceName)
	}
	if got := cfg.InitialFields["env"]; got != "prod" {
		t.Errorf("env = %v, want prod", got)
	}
	if _, ok := cfg.InitialFields["version"]; !ok {
		t.Error("expected version field")
	}
	if cfg.Encoding != "json" {
		t.Errorf("encoding = %s, want json", cfg.Encoding)
	}

	dev, err := newConfig("local", "debug")
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	if dev.Encoding != "console" {
		t.Errorf("encoding = %s, want console", dev.Encoding)
	}
	if dev.Level.Level() != zapcore.DebugLevel {
		t.Errorf("level = %s, want debug", dev.Level.Level())
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("expected nop logger, got nil")
	}

	want := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), want)
	if got := FromContext(ctx); got != want {
		t.Error("expected stored logger")
	}
}

func TestFromContextOr(t *testing.T) {
	fallback := zap.NewExample()
	if got := FromContextOr(context.Background(), fallback); got != fallback {
		t.Error("expected fallback logger")
	}

	stored := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), stored)
	if got := FromContextOr(ctx, fallback); got != stored {
		t.Error("expected stored logger")
	}
}
