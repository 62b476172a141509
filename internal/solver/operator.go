package solver

import "errors"

// ErrDivisionByZero is returned when a candidate divides by zero. It only
// disqualifies that candidate; the search carries on.
var ErrDivisionByZero = errors.New("division by zero")

// Operator is one of the four binary arithmetic operators.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

// Operators lists every operator in search order.
var Operators = [...]Operator{Add, Subtract, Multiply, Divide}

// Symbol returns the operator as it appears in a rendered expression.
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "?"
	}
}

func (o Operator) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return "unknown"
	}
}

// Apply computes a o b.
func (o Operator) Apply(a, b float64) (float64, error) {
	switch o {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, errors.New("unknown operator")
	}
}
