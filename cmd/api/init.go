package main

import (
	"context"

	"game24/internal/game24"
	"game24/internal/observability"
)

// initMetrics initialises the meter provider and the game24 instruments.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := game24.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
