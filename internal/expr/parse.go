// Package expr parses and evaluates the infix expressions players submit and
// the solver renders as hints.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"game24/internal/solver"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("syntax error")

// Parse reads an infix expression. It accepts + - * /, the display glyphs
// × ÷ −, parentheses, unary minus and decimal literals.
func Parse(s string) (Node, error) {
	p := &parser{src: s}
	p.next()

	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.text)
	}
	return n, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOperator
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	op   solver.Operator
	pos  int
}

type parser struct {
	src string
	off int
	tok token
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.tok.pos, fmt.Sprintf(format, args...))
}

func (p *parser) next() {
	for p.off < len(p.src) {
		r, w := utf8.DecodeRuneInString(p.src[p.off:])
		if !unicode.IsSpace(r) {
			break
		}
		p.off += w
	}

	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}

	r, w := utf8.DecodeRuneInString(p.src[p.off:])
	p.off += w
	text := p.src[start:p.off]

	switch r {
	case '(':
		p.tok = token{kind: tokLParen, text: text, pos: start}
	case ')':
		p.tok = token{kind: tokRParen, text: text, pos: start}
	case '+':
		p.tok = token{kind: tokOperator, text: text, op: solver.Add, pos: start}
	case '-', '−':
		p.tok = token{kind: tokOperator, text: text, op: solver.Subtract, pos: start}
	case '*', '×':
		p.tok = token{kind: tokOperator, text: text, op: solver.Multiply, pos: start}
	case '/', '÷':
		p.tok = token{kind: tokOperator, text: text, op: solver.Divide, pos: start}
	default:
		if r == '.' || (r >= '0' && r <= '9') {
			for p.off < len(p.src) {
				c := p.src[p.off]
				if c != '.' && (c < '0' || c > '9') {
					break
				}
				p.off++
			}
			p.tok = token{kind: tokNumber, text: p.src[start:p.off], pos: start}
			return
		}
		p.tok = token{kind: tokInvalid, text: text, pos: start}
	}
}

func (p *parser) isOp(ops ...solver.Operator) bool {
	if p.tok.kind != tokOperator {
		return false
	}
	for _, op := range ops {
		if p.tok.op == op {
			return true
		}
	}
	return false
}

// sum = product { ("+" | "-") product }
func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.isOp(solver.Add, solver.Subtract) {
		op := p.tok.op
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// product = unary { ("*" | "/") unary }
func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp(solver.Multiply, solver.Divide) {
		op := p.tok.op
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// unary = "-" unary | primary
//
// A minus directly before a literal folds into it, so hints rendered from
// negative operands parse back to the same leaves.
func (p *parser) parseUnary() (Node, error) {
	if !p.isOp(solver.Subtract) {
		return p.parsePrimary()
	}
	p.next()

	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if num, ok := n.(Number); ok {
		return -num, nil
	}
	return &Neg{X: n}, nil
}

// primary = number | "(" sum ")"
func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.errorf("bad number %q", p.tok.text)
		}
		p.next()
		return Number(v), nil
	case tokLParen:
		p.next()
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected %q", ")")
		}
		p.next()
		return n, nil
	case tokEOF:
		return nil, p.errorf("unexpected end of expression")
	default:
		return nil, p.errorf("unexpected %q", strings.TrimSpace(p.tok.text))
	}
}
