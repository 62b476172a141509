package game24

import (
	"github.com/go-chi/chi/v5"

	"game24/internal/puzzle"
)

// RegisterRoutes mounts all game24 endpoints onto the given router
// under the /game24 prefix.
func RegisterRoutes(r chi.Router, puzzles *puzzle.Generator) {
	r.Route("/game24", func(r chi.Router) {
		r.Post("/solvable", Solvable)
		r.Post("/hint", Hint)
		r.Get("/puzzle", NewPuzzle(puzzles))
		r.Post("/verify", Verify)
	})
}
