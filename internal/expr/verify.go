package expr

import (
	"errors"
	"fmt"
	"slices"

	"game24/internal/solver"
)

// ErrOperandMismatch means the expression does not use each operand exactly once.
var ErrOperandMismatch = errors.New("expression must use each number exactly once")

// Verdict is the outcome of checking a player's expression.
type Verdict struct {
	Expression string
	Value      float64
	Correct    bool
	Steps      []Step
}

// Verify parses expression, checks it uses exactly the given operands, and
// evaluates it against solver.Target.
func Verify(operands []float64, expression string) (Verdict, error) {
	if err := solver.Validate(operands); err != nil {
		return Verdict{}, err
	}

	n, err := Parse(expression)
	if err != nil {
		return Verdict{}, err
	}

	if !sameMultiset(n.Leaves(), operands) {
		return Verdict{}, fmt.Errorf("%w: got %v, want %v", ErrOperandMismatch, n.Leaves(), operands)
	}

	var steps []Step
	v, err := n.Eval(func(s Step) { steps = append(steps, s) })
	if err != nil {
		return Verdict{}, err
	}

	return Verdict{
		Expression: n.String(),
		Value:      v,
		Correct:    solver.Matches(v),
		Steps:      steps,
	}, nil
}

func sameMultiset(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
