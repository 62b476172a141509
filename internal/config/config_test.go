package config

import (
	"strings"
	"testing"
	"time"

	"game24/internal/puzzle"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "SHUTDOWN_TIMEOUT", "OTEL_LOGS_ENABLED", "GAME24_MIN_CARD", "GAME24_MAX_CARD", "GAME24_PUZZLE_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.OTLPLogs {
		t.Fatal("expected OTLP logs disabled by default")
	}

	want := Puzzle{MinCard: 1, MaxCard: 9, MaxAttempts: 100}
	if cfg.Puzzle != want {
		t.Fatalf("expected puzzle config %+v, got %+v", want, cfg.Puzzle)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("OTEL_LOGS_ENABLED", "true")
	t.Setenv("GAME24_MIN_CARD", "1")
	t.Setenv("GAME24_MAX_CARD", "13")
	t.Setenv("GAME24_PUZZLE_ATTEMPTS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Addr != ":9090" || cfg.ShutdownTimeout != 250*time.Millisecond || !cfg.OTLPLogs {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Puzzle.MaxCard != 13 || cfg.Puzzle.MaxAttempts != 10 {
		t.Fatalf("unexpected puzzle config %+v", cfg.Puzzle)
	}

	if _, err := puzzle.NewGenerator(cfg.Puzzle.GeneratorOptions()...); err != nil {
		t.Fatalf("expected options to build a generator: %v", err)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		"SHUTDOWN_TIMEOUT":       "soon",
		"OTEL_LOGS_ENABLED":      "maybe",
		"GAME24_MAX_CARD":        "nine",
		"GAME24_PUZZLE_ATTEMPTS": "1e3",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error to name %s, got %v", key, err)
			}
		})
	}
}
