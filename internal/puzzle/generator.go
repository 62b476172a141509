// Package puzzle deals solvable four-card rounds.
package puzzle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"game24/internal/solver"
)

const (
	DefaultMinCard     = 1
	DefaultMaxCard     = 9
	DefaultMaxAttempts = 100
)

// ErrInvalidOption is wrapped by NewGenerator for out-of-range options.
var ErrInvalidOption = errors.New("invalid generator option")

// fallbackNumbers is dealt when no random draw is solvable within the
// attempt limit.
var fallbackNumbers = [solver.Arity]float64{4, 6, 8, 1}

// Fallback returns the known-solvable set used after too many failed draws.
func Fallback() []float64 {
	return append([]float64(nil), fallbackNumbers[:]...)
}

// Puzzle is one dealt round.
type Puzzle struct {
	Numbers  []float64
	Attempts int
	Fallback bool
}

// Generator draws random card sets until one is solvable. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand

	minCard     int
	maxCard     int
	maxAttempts int
}

type Option func(*Generator)

// WithSource makes draws reproducible.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

// WithCardRange sets the inclusive range of card values.
func WithCardRange(minCard, maxCard int) Option {
	return func(g *Generator) {
		g.minCard = minCard
		g.maxCard = maxCard
	}
}

// WithMaxAttempts caps the number of draws before falling back.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		minCard:     DefaultMinCard,
		maxCard:     DefaultMaxCard,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.minCard < 0 || g.maxCard < g.minCard {
		return nil, fmt.Errorf("%w: card range [%d, %d]", ErrInvalidOption, g.minCard, g.maxCard)
	}
	if g.maxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrInvalidOption, g.maxAttempts)
	}

	if g.rng == nil {
		now := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return g, nil
}

// Next deals a solvable puzzle.
func (g *Generator) Next() Puzzle {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		numbers := g.draw()
		if solver.HasSolution(numbers) {
			return Puzzle{Numbers: numbers, Attempts: attempt}
		}
	}

	return Puzzle{Numbers: Fallback(), Attempts: g.maxAttempts, Fallback: true}
}

func (g *Generator) draw() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	numbers := make([]float64, solver.Arity)
	for i := range numbers {
		numbers[i] = float64(g.minCard + g.rng.IntN(g.maxCard-g.minCard+1))
	}
	return numbers
}
