package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"game24/internal/game24"
	"game24/internal/handlers"
	"game24/internal/observability"
	"game24/internal/puzzle"
)

func NewRouter(puzzles *puzzle.Generator) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	game24.RegisterRoutes(r, puzzles)

	return r
}
