// Package solver decides whether four numbers can be combined with
// + - * / into 24, and produces a witness expression when they can.
//
// The search is exhaustive over operand permutations, operator triples and
// tree shapes. It holds no state, so every function is safe for concurrent
// use.
package solver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// Target is the value every puzzle must reach.
	Target = 24
	// Tolerance is the maximum distance from Target that still counts as a
	// match. Floating-point division produces results such as 23.9999999.
	Tolerance = 0.001
	// Arity is the number of operands in a puzzle.
	Arity = 4
)

// ErrInvalidArity is returned by Validate when the operand count is not Arity.
var ErrInvalidArity = errors.New("invalid operand count")

// Candidate is one fully parenthesised expression over a permutation of the
// operands.
type Candidate struct {
	Operands  [Arity]float64
	Operators [Arity - 1]Operator
	Shape     Shape
}

// Evaluate computes the candidate's value.
func (c Candidate) Evaluate() (float64, error) {
	return c.Shape.Evaluate(c.Operands, c.Operators)
}

func (c Candidate) String() string {
	return c.Shape.Format(c.Operands, c.Operators)
}

// Matches reports whether v is within Tolerance of Target.
func Matches(v float64) bool {
	return math.Abs(v-Target) < Tolerance
}

// Validate checks the operand count. HasSolution and Solution degrade to a
// negative answer instead; callers that want a hard failure use this first.
func Validate(operands []float64) error {
	if len(operands) != Arity {
		return fmt.Errorf("%w: want %d, got %d", ErrInvalidArity, Arity, len(operands))
	}
	return nil
}

// HasSolution reports whether any candidate over operands reaches Target.
// It returns false when len(operands) != Arity.
func HasSolution(operands []float64) bool {
	_, ok := Solve(operands)
	return ok
}

// Solution returns the first matching candidate rendered as infix, e.g.
// "((6 - 4) + 1) * 8". ok is false when nothing matches or
// len(operands) != Arity.
func Solution(operands []float64) (expression string, ok bool) {
	c, ok := Solve(operands)
	if !ok {
		return "", false
	}
	return c.String(), true
}

// Solve returns the first candidate that reaches Target.
//
// Order: the canonical shapes (LeftFold, Paired) are searched across every
// permutation first; the extended shapes only when that yields nothing.
// Within a phase, permutations vary outermost, then the three operators in
// + - * / order, then the shapes in declaration order.
func Solve(operands []float64) (Candidate, bool) {
	if len(operands) != Arity {
		return Candidate{}, false
	}

	perms := permutations(operands)
	for _, shapes := range searchPhases {
		for _, p := range perms {
			if c, ok := solvePermutation([Arity]float64(p), shapes); ok {
				return c, true
			}
		}
	}
	return Candidate{}, false
}

func solvePermutation(n [Arity]float64, shapes []Shape) (Candidate, bool) {
	for _, o1 := range Operators {
		for _, o2 := range Operators {
			for _, o3 := range Operators {
				ops := [Arity - 1]Operator{o1, o2, o3}
				for _, s := range shapes {
					v, err := s.Evaluate(n, ops)
					if err != nil {
						continue
					}
					if Matches(v) {
						return Candidate{Operands: n, Operators: ops, Shape: s}, true
					}
				}
			}
		}
	}
	return Candidate{}, false
}

// FormatOperand renders v in its shortest decimal form: 4, 1.5, -2.
func FormatOperand(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
