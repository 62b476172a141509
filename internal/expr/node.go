package expr

import (
	"fmt"

	"game24/internal/solver"
)

// Node is a parsed expression tree.
type Node interface {
	// Eval computes the value, calling observe (if non-nil) after every
	// binary reduction in evaluation order.
	Eval(observe func(Step)) (float64, error)
	// Leaves returns the literals from left to right.
	Leaves() []float64
	String() string

	eval(observe func(Step), index *int) (float64, error)
}

// Step is one binary reduction performed during evaluation.
type Step struct {
	Index  int     `json:"index"`
	Op     string  `json:"op"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Result float64 `json:"result"`
}

// Number is a literal leaf.
type Number float64

func (n Number) Eval(observe func(Step)) (float64, error) {
	var index int
	return n.eval(observe, &index)
}

func (n Number) eval(func(Step), *int) (float64, error) { return float64(n), nil }

func (n Number) Leaves() []float64 { return []float64{float64(n)} }

func (n Number) String() string { return solver.FormatOperand(float64(n)) }

// Neg negates a parenthesised subtree, as in -(3 - 5).
type Neg struct {
	X Node
}

func (n *Neg) Eval(observe func(Step)) (float64, error) {
	var index int
	return n.eval(observe, &index)
}

func (n *Neg) eval(observe func(Step), index *int) (float64, error) {
	v, err := n.X.eval(observe, index)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *Neg) Leaves() []float64 { return n.X.Leaves() }

func (n *Neg) String() string { return "-" + wrap(n.X) }

// Binary applies Op to two subtrees.
type Binary struct {
	Op          solver.Operator
	Left, Right Node
}

func (b *Binary) Eval(observe func(Step)) (float64, error) {
	var index int
	return b.eval(observe, &index)
}

func (b *Binary) eval(observe func(Step), index *int) (float64, error) {
	l, err := b.Left.eval(observe, index)
	if err != nil {
		return 0, err
	}
	r, err := b.Right.eval(observe, index)
	if err != nil {
		return 0, err
	}

	v, err := b.Op.Apply(l, r)
	if err != nil {
		return 0, fmt.Errorf("%s %s %s: %w", solver.FormatOperand(l), b.Op.Symbol(), solver.FormatOperand(r), err)
	}

	if observe != nil {
		observe(Step{Index: *index, Op: b.Op.String(), Left: l, Right: r, Result: v})
	}
	*index++
	return v, nil
}

func (b *Binary) Leaves() []float64 {
	return append(b.Left.Leaves(), b.Right.Leaves()...)
}

// String renders in hint format: the outermost operation is bare, every
// nested operation is parenthesised.
func (b *Binary) String() string {
	return fmt.Sprintf("%s %s %s", wrap(b.Left), b.Op.Symbol(), wrap(b.Right))
}

func wrap(n Node) string {
	switch n.(type) {
	case *Binary, *Neg:
		return "(" + n.String() + ")"
	default:
		return n.String()
	}
}
