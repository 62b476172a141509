// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"game24/internal/puzzle"
)

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// OTLPLogs tees application logs to the OTLP log exporter.
	OTLPLogs bool
	Puzzle   Puzzle
}

type Puzzle struct {
	MinCard     int
	MaxCard     int
	MaxAttempts int
}

// Load reads the configuration. Unset variables fall back to defaults;
// malformed ones are an error naming the variable.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getenv("ADDR", ":8080"),
		ShutdownTimeout: 5 * time.Second,
		Puzzle: Puzzle{
			MinCard:     puzzle.DefaultMinCard,
			MaxCard:     puzzle.DefaultMaxCard,
			MaxAttempts: puzzle.DefaultMaxAttempts,
		},
	}

	var err error
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.OTLPLogs, err = boolEnv("OTEL_LOGS_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.Puzzle.MinCard, err = intEnv("GAME24_MIN_CARD", cfg.Puzzle.MinCard); err != nil {
		return Config{}, err
	}
	if cfg.Puzzle.MaxCard, err = intEnv("GAME24_MAX_CARD", cfg.Puzzle.MaxCard); err != nil {
		return Config{}, err
	}
	if cfg.Puzzle.MaxAttempts, err = intEnv("GAME24_PUZZLE_ATTEMPTS", cfg.Puzzle.MaxAttempts); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// GeneratorOptions converts the puzzle settings for puzzle.NewGenerator.
func (p Puzzle) GeneratorOptions() []puzzle.Option {
	return []puzzle.Option{
		puzzle.WithCardRange(p.MinCard, p.MaxCard),
		puzzle.WithMaxAttempts(p.MaxAttempts),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
