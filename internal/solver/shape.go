package solver

import "fmt"

// Shape is a binary-tree topology over four leaves. Operators are numbered
// left to right as they appear in the rendered expression.
type Shape int

const (
	// LeftFold is ((a o1 b) o2 c) o3 d.
	LeftFold Shape = iota
	// Paired is (a o1 b) o2 (c o3 d).
	Paired
	// InnerLeft is (a o1 (b o2 c)) o3 d.
	InnerLeft
	// InnerRight is a o1 ((b o2 c) o3 d).
	InnerRight
	// RightFold is a o1 (b o2 (c o3 d)).
	RightFold
)

var (
	canonicalShapes = []Shape{LeftFold, Paired}
	extendedShapes  = []Shape{InnerLeft, InnerRight, RightFold}

	// searchPhases is tried in order. The canonical shapes alone miss
	// answers such as 6 / (1 - (3 / 4)); the extended phase only runs when
	// the canonical one finds nothing, so canonical hints never change.
	searchPhases = [][]Shape{canonicalShapes, extendedShapes}
)

func (s Shape) String() string {
	switch s {
	case LeftFold:
		return "left-fold"
	case Paired:
		return "paired"
	case InnerLeft:
		return "inner-left"
	case InnerRight:
		return "inner-right"
	case RightFold:
		return "right-fold"
	default:
		return "unknown"
	}
}

// Evaluate computes the value of the tree over n with the given operators.
func (s Shape) Evaluate(n [Arity]float64, ops [Arity - 1]Operator) (float64, error) {
	a, b, c, d := n[0], n[1], n[2], n[3]
	o1, o2, o3 := ops[0], ops[1], ops[2]

	switch s {
	case LeftFold:
		x, err := o1.Apply(a, b)
		if err != nil {
			return 0, err
		}
		y, err := o2.Apply(x, c)
		if err != nil {
			return 0, err
		}
		return o3.Apply(y, d)
	case Paired:
		x, err := o1.Apply(a, b)
		if err != nil {
			return 0, err
		}
		y, err := o3.Apply(c, d)
		if err != nil {
			return 0, err
		}
		return o2.Apply(x, y)
	case InnerLeft:
		x, err := o2.Apply(b, c)
		if err != nil {
			return 0, err
		}
		y, err := o1.Apply(a, x)
		if err != nil {
			return 0, err
		}
		return o3.Apply(y, d)
	case InnerRight:
		x, err := o2.Apply(b, c)
		if err != nil {
			return 0, err
		}
		y, err := o3.Apply(x, d)
		if err != nil {
			return 0, err
		}
		return o1.Apply(a, y)
	case RightFold:
		x, err := o3.Apply(c, d)
		if err != nil {
			return 0, err
		}
		y, err := o2.Apply(b, x)
		if err != nil {
			return 0, err
		}
		return o1.Apply(a, y)
	default:
		return 0, fmt.Errorf("unknown shape %d", int(s))
	}
}

// Format renders the tree as parenthesised infix, e.g. "((4 + 6) * 8) / 1".
func (s Shape) Format(n [Arity]float64, ops [Arity - 1]Operator) string {
	a, b, c, d := FormatOperand(n[0]), FormatOperand(n[1]), FormatOperand(n[2]), FormatOperand(n[3])
	o1, o2, o3 := ops[0].Symbol(), ops[1].Symbol(), ops[2].Symbol()

	switch s {
	case LeftFold:
		return fmt.Sprintf("((%s %s %s) %s %s) %s %s", a, o1, b, o2, c, o3, d)
	case Paired:
		return fmt.Sprintf("(%s %s %s) %s (%s %s %s)", a, o1, b, o2, c, o3, d)
	case InnerLeft:
		return fmt.Sprintf("(%s %s (%s %s %s)) %s %s", a, o1, b, o2, c, o3, d)
	case InnerRight:
		return fmt.Sprintf("%s %s ((%s %s %s) %s %s)", a, o1, b, o2, c, o3, d)
	case RightFold:
		return fmt.Sprintf("%s %s (%s %s (%s %s %s))", a, o1, b, o2, c, o3, d)
	default:
		return ""
	}
}
